package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/service"
	"github.com/msomdec/eventpass/internal/view"
)

// sessionMaxAge matches the lifetime of admin session tokens.
const sessionMaxAge = 12 * 60 * 60

// AuthHandler handles admin sign-in and sign-out.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleLoginPage renders the sign-in form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	view.LoginPage("", "").Render(r.Context(), w)
}

// HandleLogin processes the sign-in form.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			w.WriteHeader(http.StatusUnauthorized)
			view.LoginPage(email, "Invalid email or password.").Render(r.Context(), w)
			return
		}
		slog.Error("login admin", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		view.LoginPage(email, "An unexpected error occurred. Please try again.").Render(r.Context(), w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionMaxAge,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
