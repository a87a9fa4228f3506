package services

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
)

// ProfileMe addresses the viewer's own profile.
const ProfileMe = "me"

// DirectoryServiceProvider defines the interface for the employee directory.
type DirectoryServiceProvider interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetProfile(ctx context.Context, viewer models.User, id string) (models.User, error)
	UpdateProfile(ctx context.Context, viewer models.User, id string, update models.UserUpdate) (models.User, error)
	CreateEmployee(ctx context.Context, viewer models.User, create models.UserCreate) (models.User, error)
}

// DirectoryService provides the employee directory on top of the backend user API.
type DirectoryService struct {
	client *backend.Client
	events EventServiceProvider
	now    func() time.Time
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(client *backend.Client, events EventServiceProvider) *DirectoryService {
	return &DirectoryService{client: client, events: events, now: time.Now}
}

// ListUsers searches colleagues. Filter values are trimmed; an unknown role is rejected.
func (s *DirectoryService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	filter.FullName = strings.TrimSpace(filter.FullName)
	filter.PositionEmployee = strings.TrimSpace(filter.PositionEmployee)

	verr := &ValidationError{}
	if filter.Role != "" {
		if _, err := models.ParseRole(filter.Role); err != nil {
			verr.add("role", "Unknown role")
		}
	}
	if !models.ValidSex(filter.Sex) {
		verr.add("sex", "Unknown sex value")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	return s.client.ListUsers(ctx, filter)
}

// resolveProfileID maps "me" and the viewer's own numeric id to (0, true).
func resolveProfileID(viewer models.User, id string) (int, bool, error) {
	if id == ProfileMe {
		return 0, true, nil
	}
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, false, ErrInvalidProfileID
	}
	if n == viewer.ID {
		return 0, true, nil
	}
	return n, false, nil
}

// GetProfile returns a profile. Only admins may look at profiles other than their own.
func (s *DirectoryService) GetProfile(ctx context.Context, viewer models.User, id string) (models.User, error) {
	userID, self, err := resolveProfileID(viewer, id)
	if err != nil {
		return models.User{}, err
	}
	if self {
		return s.client.Me(ctx)
	}
	if !viewer.IsAdmin() {
		return models.User{}, ErrForbidden
	}
	return s.client.GetUser(ctx, userID)
}

// UpdateProfile saves profile changes. Anyone may edit their own profile apart from the role;
// admins may edit any profile including roles.
func (s *DirectoryService) UpdateProfile(ctx context.Context, viewer models.User, id string, update models.UserUpdate) (models.User, error) {
	userID, self, err := resolveProfileID(viewer, id)
	if err != nil {
		return models.User{}, err
	}
	if !viewer.IsAdmin() && (!self || update.Role != nil) {
		return models.User{}, ErrForbidden
	}
	if err := validateUpdate(update); err != nil {
		return models.User{}, err
	}

	if self {
		return s.client.UpdateMe(ctx, update)
	}

	user, err := s.client.UpdateUser(ctx, userID, update)
	if err != nil {
		return models.User{}, err
	}
	recordEvent(s.events, "user.update", fmt.Sprintf("Profile of %s (#%d) updated by %s", user.FullName, user.ID, viewer.FullName), viewer.ID)
	return user, nil
}

// CreateEmployee opens a new account. Admin only.
func (s *DirectoryService) CreateEmployee(ctx context.Context, viewer models.User, create models.UserCreate) (models.User, error) {
	if !viewer.IsAdmin() {
		return models.User{}, ErrForbidden
	}

	create.FullName = strings.TrimSpace(create.FullName)
	create.PositionEmployee = strings.TrimSpace(create.PositionEmployee)
	create.Subdivision = strings.TrimSpace(create.Subdivision)
	create.EmailUser = strings.TrimSpace(create.EmailUser)
	create.PhoneNumber = strings.TrimSpace(create.PhoneNumber)
	create.TgName = strings.TrimSpace(create.TgName)
	if create.Birthday == "" {
		create.Birthday = s.now().Format(models.BirthdayLayout)
	}
	if create.Role == "" {
		create.Role = models.RoleUser
	}

	verr := &ValidationError{}
	if create.FullName == "" {
		verr.add("full_name", "Full name is required")
	}
	if strings.TrimSpace(create.Password) == "" {
		verr.add("password", "Password is required")
	}
	if create.PositionEmployee == "" {
		verr.add("position_employee", "Position is required")
	}
	if create.Subdivision == "" {
		verr.add("subdivision", "Subdivision is required")
	}
	if _, err := time.Parse(models.BirthdayLayout, create.Birthday); err != nil {
		verr.add("birthday", "Birthday must be a date (YYYY-MM-DD)")
	}
	if !models.ValidSex(create.Sex) {
		verr.add("sex", "Unknown sex value")
	}
	if create.EmailUser != "" && !validEmail(create.EmailUser) {
		verr.add("email_user", "Email is not valid")
	}
	if _, err := models.ParseRole(string(create.Role)); err != nil {
		verr.add("role", "Unknown role")
	}
	if err := verr.orNil(); err != nil {
		return models.User{}, err
	}

	user, err := s.client.CreateUser(ctx, create)
	if err != nil {
		return models.User{}, err
	}
	recordEvent(s.events, "user.create", fmt.Sprintf("Employee account %s (#%d) created by %s", user.FullName, user.ID, viewer.FullName), viewer.ID)
	return user, nil
}

func validateUpdate(u models.UserUpdate) error {
	verr := &ValidationError{}
	if u.FullName != nil && strings.TrimSpace(*u.FullName) == "" {
		verr.add("full_name", "Full name cannot be empty")
	}
	if u.Birthday != nil && *u.Birthday != "" {
		if _, err := time.Parse(models.BirthdayLayout, *u.Birthday); err != nil {
			verr.add("birthday", "Birthday must be a date (YYYY-MM-DD)")
		}
	}
	if u.Sex != nil && !models.ValidSex(*u.Sex) {
		verr.add("sex", "Unknown sex value")
	}
	if u.EmailUser != nil && *u.EmailUser != "" && !validEmail(*u.EmailUser) {
		verr.add("email_user", "Email is not valid")
	}
	if u.Role != nil {
		if _, err := models.ParseRole(string(*u.Role)); err != nil {
			verr.add("role", "Unknown role")
		}
	}
	return verr.orNil()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
