package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/auth"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	*Responder
	service services.SessionServiceProvider
	cookies auth.CookieOptions
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(rs *Responder, service services.SessionServiceProvider, cookies auth.CookieOptions) *SessionHandler {
	return &SessionHandler{Responder: rs, service: service, cookies: cookies}
}

type loginPage struct {
	Email string
}

// LoginPage shows the login form, or forwards a signed-in visitor to the dashboard.
func (h *SessionHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.HasSession(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "login", "Sign in", views.Page{Data: loginPage{}})
}

// Login exchanges the submitted credentials for a session cookie.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		status, message := loginFailure(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("email", email).Msg("Login failed")
		} else {
			log.Warn().Err(err).Str("email", email).Msg("Failed authentication attempt")
		}
		h.render(w, r, status, "login", "Sign in", views.Page{Error: message, Data: loginPage{Email: email}})
		return
	}

	auth.SetSessionCookie(w, token.AccessToken, h.cookies)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func loginFailure(err error) (int, string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "Enter your email and password"
	case errors.Is(err, services.ErrAccountLocked):
		return http.StatusTooManyRequests, "Account locked due to too many attempts. Try again later"
	case backend.IsUnauthorized(err), backend.IsForbidden(err):
		return http.StatusUnauthorized, backend.Detail(err, "Incorrect email or password")
	}
	return http.StatusBadGateway, "Login failed, please try again"
}

// Logout drops the session cookie.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookies.Secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
