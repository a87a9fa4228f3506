package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// DirectoryHandler serves the employee list and profiles.
type DirectoryHandler struct {
	*Responder
	service services.DirectoryServiceProvider
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(rs *Responder, service services.DirectoryServiceProvider) *DirectoryHandler {
	return &DirectoryHandler{Responder: rs, service: service}
}

type dashboardPage struct {
	Filter models.UserFilter
	Users  []models.User
}

// Dashboard lists colleagues, narrowed by the filter in the query string.
func (h *DirectoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.UserFilter{
		FullName:         q.Get("full_name"),
		Role:             q.Get("role"),
		Sex:              q.Get("sex"),
		PositionEmployee: q.Get("position_employee"),
	}

	page := views.Page{}
	users, err := h.service.ListUsers(r.Context(), filter)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		if fields := fieldErrors(err); fields != nil {
			page.Error = "Invalid filter"
		} else {
			log.Error().Err(err).Msg("Failed to load users")
			page.Error = backend.Detail(err, "Failed to load users")
		}
	}
	page.Data = dashboardPage{Filter: filter, Users: users}
	h.render(w, r, http.StatusOK, "dashboard", "Employees", page)
}

type profileForm struct {
	FullName         string
	Birthday         string
	Sex              string
	EmailUser        string
	PhoneNumber      string
	TgName           string
	PositionEmployee string
	Subdivision      string
	Role             string
}

func profileFormFromUser(u models.User) profileForm {
	f := profileForm{
		FullName:         u.FullName,
		Birthday:         u.Birthday,
		Sex:              u.Sex,
		TgName:           u.TgName,
		PositionEmployee: u.PositionEmployee,
		Subdivision:      u.Subdivision,
		Role:             string(u.Role),
	}
	if u.EmailUser != nil {
		f.EmailUser = *u.EmailUser
	}
	if u.PhoneNumber != nil {
		f.PhoneNumber = *u.PhoneNumber
	}
	return f
}

func profileFormFromRequest(r *http.Request) profileForm {
	field := func(name string) string { return strings.TrimSpace(r.PostFormValue(name)) }
	return profileForm{
		FullName:         field("full_name"),
		Birthday:         field("birthday"),
		Sex:              field("sex"),
		EmailUser:        field("email_user"),
		PhoneNumber:      field("phone_number"),
		TgName:           field("tg_name"),
		PositionEmployee: field("position_employee"),
		Subdivision:      field("subdivision"),
		Role:             field("role"),
	}
}

// update turns the form into a patch. Blank optional contacts are left out, so the backend
// keeps their stored values; the role is only sent when the editor may change it.
func (f profileForm) update(withRole bool) models.UserUpdate {
	u := models.UserUpdate{
		FullName:         &f.FullName,
		Sex:              &f.Sex,
		TgName:           &f.TgName,
		PositionEmployee: &f.PositionEmployee,
		Subdivision:      &f.Subdivision,
	}
	if f.Birthday != "" {
		u.Birthday = &f.Birthday
	}
	if f.EmailUser != "" {
		u.EmailUser = &f.EmailUser
	}
	if f.PhoneNumber != "" {
		u.PhoneNumber = &f.PhoneNumber
	}
	if withRole && f.Role != "" {
		role := models.Role(f.Role)
		u.Role = &role
	}
	return u
}

type profilePage struct {
	ID         string
	Profile    models.User
	Form       profileForm
	Errors     map[string]string
	Editing    bool
	CanEdit    bool
	ShowRole   bool
	ShowLogout bool
}

func isOwnProfile(viewer models.User, id string) bool {
	return id == services.ProfileMe || id == strconv.Itoa(viewer.ID)
}

// Profile shows a profile, or its edit form with ?edit=1 when the viewer may edit it.
func (h *DirectoryHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := viewer(r)

	profile, err := h.service.GetProfile(r.Context(), user, id)
	if err != nil {
		h.profileFailure(w, r, err)
		return
	}

	own := isOwnProfile(user, id)
	data := profilePage{
		ID:         id,
		Profile:    profile,
		Form:       profileFormFromUser(profile),
		CanEdit:    own || user.IsAdmin(),
		ShowRole:   user.IsAdmin(),
		ShowLogout: own,
	}
	data.Editing = data.CanEdit && r.URL.Query().Get("edit") == "1"

	page := views.Page{Data: data}
	if r.URL.Query().Get("notice") == "saved" {
		page.Notice = "Profile updated"
	}
	h.render(w, r, http.StatusOK, "profile", profile.FullName, page)
}

// UpdateProfile saves the edit form.
func (h *DirectoryHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user := viewer(r)
	form := profileFormFromRequest(r)

	_, err := h.service.UpdateProfile(r.Context(), user, id, form.update(user.IsAdmin()))
	if err == nil {
		http.Redirect(w, r, "/profile/"+url.PathEscape(id)+"?notice=saved", http.StatusSeeOther)
		return
	}

	data := profilePage{
		ID:       id,
		Form:     form,
		Editing:  true,
		CanEdit:  true,
		ShowRole: user.IsAdmin(),
	}
	if fields := fieldErrors(err); fields != nil {
		data.Errors = fields
		h.render(w, r, http.StatusUnprocessableEntity, "profile", "Edit profile", views.Page{Error: "Please correct the highlighted fields", Data: data})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != http.StatusUnauthorized &&
		apiErr.StatusCode != http.StatusForbidden && apiErr.StatusCode != http.StatusNotFound {
		log.Warn().Err(err).Str("profile", id).Msg("Backend rejected profile update")
		h.render(w, r, http.StatusBadRequest, "profile", "Edit profile", views.Page{Error: backend.Detail(err, "Failed to update profile"), Data: data})
		return
	}
	h.profileFailure(w, r, err)
}

// profileFailure sends viewers away from profiles they cannot reach.
func (h *DirectoryHandler) profileFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case h.sessionExpired(w, r, err):
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrInvalidProfileID),
		backend.IsForbidden(err), backend.IsNotFound(err):
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	default:
		h.serverError(w, r, err, "Failed to load profile")
	}
}
