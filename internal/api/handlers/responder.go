package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/auth"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// Responder renders pages and turns common failures into responses. Page handlers embed it.
type Responder struct {
	views         *views.Renderer
	secureCookies bool
}

// NewResponder creates a new Responder.
func NewResponder(v *views.Renderer, secureCookies bool) *Responder {
	return &Responder{views: v, secureCookies: secureCookies}
}

type errorPage struct {
	Message string
}

// render fills the layout fields from the request context and writes the page.
func (rs *Responder) render(w http.ResponseWriter, r *http.Request, status int, name, title string, page views.Page) {
	page.Title = title
	page.CSRFToken = auth.CSRFToken(r.Context())
	if user, ok := auth.CurrentUser(r.Context()); ok {
		page.User = &user
	}
	rs.views.Render(w, status, name, page)
}

func (rs *Responder) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	rs.render(w, r, status, "error", title, views.Page{Data: errorPage{Message: message}})
}

func (rs *Responder) forbidden(w http.ResponseWriter, r *http.Request, message string) {
	rs.renderError(w, r, http.StatusForbidden, "Access denied", message)
}

func (rs *Responder) notFound(w http.ResponseWriter, r *http.Request, message string) {
	rs.renderError(w, r, http.StatusNotFound, "Not found", message)
}

// serverError logs err and renders a generic failure page. Backend failures map to 502.
func (rs *Responder) serverError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg(message)
	status := http.StatusInternalServerError
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status = http.StatusBadGateway
	}
	rs.renderError(w, r, status, "Something went wrong", message)
}

// sessionExpired handles a token the backend no longer accepts: the cookie is dropped and the
// user is sent back to the login page. It reports whether it wrote a response.
func (rs *Responder) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !backend.IsUnauthorized(err) {
		return false
	}
	auth.ClearSessionCookie(w, rs.secureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return true
}

// fieldErrors returns the per-field messages of a validation failure, or nil.
func fieldErrors(err error) map[string]string {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// viewer returns the account RequireUser stored in the context.
func viewer(r *http.Request) models.User {
	user, _ := auth.CurrentUser(r.Context())
	return user
}
