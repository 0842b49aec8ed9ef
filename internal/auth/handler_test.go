package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvaldes/memberhub/internal/models"
	"github.com/mvaldes/memberhub/internal/store"
)

func newTestHandler() (*Handler, *store.MemoryUserStore, *MemorySessionStore) {
	users := store.NewMemoryUserStore()
	sessions := NewMemorySessionStore(time.Hour)
	h := NewHandler(users, sessions, NewBcryptHasher(bcrypt.MinCost), time.Hour)
	return h, users, sessions
}

func postForm(handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func signupForm(name, email, password, role string) url.Values {
	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)
	form.Set("password", password)
	if role != "" {
		form.Set("role", role)
	}
	return form
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestSignupCreatesUserAndSession(t *testing.T) {
	t.Parallel()

	h, users, sessions := newTestHandler()
	w := postForm(h.Signup, "/signup", signupForm("A", "a@x.com", "secret", ""))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/members", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie, "signup must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)

	sess, err := sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "A", sess.Name)
	assert.Equal(t, models.RoleUser, sess.Role, "omitted role must default to user")

	u, err := users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "secret", u.PasswordHash)
}

func TestSignupHonoursSubmittedAdminRole(t *testing.T) {
	t.Parallel()

	h, users, _ := newTestHandler()
	w := postForm(h.Signup, "/signup", signupForm("Root", "root@x.com", "secret", "admin"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	u, err := users.FindByEmail(context.Background(), "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestSignupValidationErrorIsInline(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler()
	w := postForm(h.Signup, "/signup", signupForm("", "a@x.com", "secret", ""))

	assert.Equal(t, http.StatusOK, w.Code, "validation failure is an inline message, not an error status")
	assert.Contains(t, w.Body.String(), "Name is required")
	assert.Contains(t, w.Body.String(), `href="/signup"`)
	assert.Nil(t, sessionCookie(t, w))
}

func TestLoginAfterSignup(t *testing.T) {
	t.Parallel()

	h, _, sessions := newTestHandler()
	w := postForm(h.Signup, "/signup", signupForm("A", "a@x.com", "secret", "admin"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	form := url.Values{}
	form.Set("email", "a@x.com")
	form.Set("password", "secret")
	w = postForm(h.Login, "/login", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/members", w.Header().Get("Location"))

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	sess, err := sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.RoleAdmin, sess.Role, "session role must match the stored user")
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler()
	form := url.Values{}
	form.Set("email", "nobody@x.com")
	form.Set("password", "secret")
	w := postForm(h.Login, "/login", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
	assert.Nil(t, sessionCookie(t, w), "no session may be created for an unknown email")
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler()
	w := postForm(h.Signup, "/signup", signupForm("A", "a@x.com", "secret", ""))
	require.Equal(t, http.StatusSeeOther, w.Code)

	form := url.Values{}
	form.Set("email", "a@x.com")
	form.Set("password", "wrong-one")
	w = postForm(h.Login, "/login", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password")
	assert.Nil(t, sessionCookie(t, w))
}

func TestLogoutDestroysSession(t *testing.T) {
	t.Parallel()

	h, _, sessions := newTestHandler()
	w := postForm(h.Signup, "/signup", signupForm("A", "a@x.com", "secret", ""))
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.Logout(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := sessionCookie(t, w)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	sess, err := sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogoutWithoutSession(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
