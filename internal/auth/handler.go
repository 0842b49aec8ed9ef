package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mvaldes/memberhub/internal/models"
	"github.com/mvaldes/memberhub/internal/store"
	"github.com/mvaldes/memberhub/internal/templates"
)

// UserStore is the slice of user persistence the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds the signup, login, and logout HTTP handlers.
type Handler struct {
	users    UserStore
	sessions SessionStore
	hasher   Hasher
	ttl      time.Duration
}

func NewHandler(users UserStore, sessions SessionStore, hasher Hasher, ttl time.Duration) *Handler {
	return &Handler{users: users, sessions: sessions, hasher: hasher, ttl: ttl}
}

// SignupForm renders the signup page.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, http.StatusOK, "signup.html", nil)
}

// Signup validates the form, creates the user, and starts a session.
// A client-supplied role field is honoured, including "admin"; this is
// inherited behaviour, kept rather than silently tightened.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	req := models.SignupRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}
	if err := req.Validate(); err != nil {
		templates.Message(w, err.Error(), "/signup")
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: digest,
		Role:         req.UserRole(),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		log.Printf("signup: create user: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.startSession(w, r, user)
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, http.StatusOK, "login.html", nil)
}

// Login verifies credentials and starts a session. Unknown emails and
// wrong passwords are reported inline with a retry link, not as HTTP
// error statuses.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := models.LoginRequest{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := req.Validate(); err != nil {
		templates.Message(w, err.Error(), "/login")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		templates.Message(w, "User not found", "/login")
		return
	}
	if err != nil {
		log.Printf("login: find user: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ok, err := h.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		log.Printf("login: verify password: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		templates.Message(w, "Incorrect password", "/login")
		return
	}

	h.startSession(w, r, user)
}

// Logout destroys the current session, clears the cookie, and returns to
// the landing page. Safe to call without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			log.Printf("logout: destroy session: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// startSession snapshots the user's identity into a new session, sets the
// cookie, and redirects to the members area.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := h.sessions.Create(r.Context(), Session{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		log.Printf("create session: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.ttl / time.Second),
	})
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}
