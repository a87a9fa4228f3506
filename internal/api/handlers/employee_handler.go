package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

const employeeAccessDenied = "Only administrators can create employee accounts"

// EmployeeHandler serves the admin form for opening employee accounts.
type EmployeeHandler struct {
	*Responder
	service services.DirectoryServiceProvider
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(rs *Responder, service services.DirectoryServiceProvider) *EmployeeHandler {
	return &EmployeeHandler{Responder: rs, service: service}
}

type employeePage struct {
	Form   profileForm
	Errors map[string]string
}

func blankEmployeeForm() profileForm {
	return profileForm{
		Birthday: time.Now().Format(models.BirthdayLayout),
		Role:     string(models.RoleUser),
	}
}

// New shows the empty form.
func (h *EmployeeHandler) New(w http.ResponseWriter, r *http.Request) {
	if !viewer(r).IsAdmin() {
		h.forbidden(w, r, employeeAccessDenied)
		return
	}
	h.render(w, r, http.StatusOK, "employee_form", "New employee", views.Page{Data: employeePage{Form: blankEmployeeForm()}})
}

// Create opens the account and shows a fresh form on success.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := profileFormFromRequest(r)
	create := models.UserCreate{
		FullName:         form.FullName,
		Birthday:         form.Birthday,
		Sex:              form.Sex,
		EmailUser:        form.EmailUser,
		PhoneNumber:      form.PhoneNumber,
		TgName:           form.TgName,
		PositionEmployee: form.PositionEmployee,
		Subdivision:      form.Subdivision,
		Role:             models.Role(form.Role),
		Password:         r.PostFormValue("password"),
	}

	user, err := h.service.CreateEmployee(r.Context(), viewer(r), create)
	if err == nil {
		log.Info().Int("user_id", user.ID).Str("name", user.FullName).Msg("Employee account created")
		h.render(w, r, http.StatusCreated, "employee_form", "New employee", views.Page{
			Notice: "User created successfully",
			Data:   employeePage{Form: blankEmployeeForm()},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrForbidden), backend.IsForbidden(err):
		h.forbidden(w, r, employeeAccessDenied)
	case h.sessionExpired(w, r, err):
	case fieldErrors(err) != nil:
		h.render(w, r, http.StatusUnprocessableEntity, "employee_form", "New employee", views.Page{
			Error: "Please correct the highlighted fields",
			Data:  employeePage{Form: form, Errors: fieldErrors(err)},
		})
	default:
		status := http.StatusBadGateway
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		log.Warn().Err(err).Str("name", form.FullName).Msg("Failed to create employee")
		h.render(w, r, status, "employee_form", "New employee", views.Page{
			Error: backend.Detail(err, "Failed to create user"),
			Data:  employeePage{Form: form},
		})
	}
}
