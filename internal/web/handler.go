package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvaldes/memberhub/internal/auth"
	"github.com/mvaldes/memberhub/internal/models"
	"github.com/mvaldes/memberhub/internal/store"
	"github.com/mvaldes/memberhub/internal/templates"
)

// UserDirectory is the slice of user persistence the page handlers need.
type UserDirectory interface {
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
}

// Handler holds the page-rendering HTTP handlers.
type Handler struct {
	users UserDirectory
}

func NewHandler(users UserDirectory) *Handler {
	return &Handler{users: users}
}

type homeData struct {
	Session *auth.Session
}

// Home renders the landing page, with the current identity when a session
// is attached.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, http.StatusOK, "home.html", homeData{
		Session: auth.SessionFromContext(r.Context()),
	})
}

type membersData struct {
	Session *auth.Session
	Items   []string
}

// Members renders the gated content list. Sits behind RequireAuth.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, http.StatusOK, "members.html", membersData{
		Session: auth.SessionFromContext(r.Context()),
		Items: []string{
			"Welcome pack",
			"Community guidelines",
			"Monthly newsletter archive",
		},
	})
}

type adminData struct {
	Session *auth.Session
	Users   []models.User
}

// Admin lists all users. Sits behind RequireAuth only: a signed-in
// non-admin gets the landing page back, not a forbidden response.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil || sess.Role != models.RoleAdmin {
		templates.Render(w, http.StatusOK, "home.html", homeData{Session: sess})
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		log.Printf("admin: list users: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	templates.Render(w, http.StatusOK, "admin.html", adminData{Session: sess, Users: users})
}

// Promote sets the target user's role to admin. Unconditional: no
// self-promotion or last-admin guards.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleAdmin)
}

// Demote sets the target user's role back to user.
func (h *Handler) Demote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleUser)
}

// setRole applies the role change and returns to the admin page. An id
// that matches no record is a silent no-op.
func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, role models.Role) {
	id := chi.URLParam(r, "id")
	err := h.users.UpdateRole(r.Context(), id, role)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("set role %s on %s: %v", role, id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// NotFound renders the 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, http.StatusNotFound, "notfound.html", nil)
}
