package models

import (
	"fmt"
	"net/url"
	"time"
)

// Role is the access level the backend assigns to an account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Roles lists every role in the order forms present them.
var Roles = []Role{RoleUser, RoleManager, RoleAdmin}

// ParseRole validates a role string coming from a form or query.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleUser:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Label is the human-readable name of the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleUser:
		return "User"
	}
	return string(r)
}

// Sex values as stored by the backend.
const (
	SexMale   = "М"
	SexFemale = "Ж"
)

// ValidSex reports whether s is an accepted sex value. Empty means unspecified.
func ValidSex(s string) bool {
	return s == "" || s == SexMale || s == SexFemale
}

// SexLabel is the human-readable name of a sex value.
func SexLabel(s string) string {
	switch s {
	case SexMale:
		return "Male"
	case SexFemale:
		return "Female"
	}
	return ""
}

// BirthdayLayout is the wire format of User.Birthday.
const BirthdayLayout = "2006-01-02"

// User is an employee account as returned by the backend.
type User struct {
	ID               int       `json:"id"`
	FullName         string    `json:"full_name"`
	Birthday         string    `json:"birthday,omitempty"`
	Sex              string    `json:"sex,omitempty"`
	EmailUser        *string   `json:"email_user,omitempty"`
	EmailCorporate   string    `json:"email_corporate,omitempty"`
	PhoneNumber      *string   `json:"phone_number,omitempty"`
	TgName           string    `json:"tg_name,omitempty"`
	PositionEmployee string    `json:"position_employee,omitempty"`
	Subdivision      string    `json:"subdivision,omitempty"`
	Role             Role      `json:"role"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserUpdate contains optional fields that can be updated for a user.
type UserUpdate struct {
	FullName         *string `json:"full_name,omitempty"`
	Birthday         *string `json:"birthday,omitempty"`
	Sex              *string `json:"sex,omitempty"`
	EmailUser        *string `json:"email_user,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	TgName           *string `json:"tg_name,omitempty"`
	PositionEmployee *string `json:"position_employee,omitempty"`
	Subdivision      *string `json:"subdivision,omitempty"`
	Role             *Role   `json:"role,omitempty"`
}

// UserCreate is the payload an admin submits to open a new employee account.
type UserCreate struct {
	FullName         string `json:"full_name"`
	Birthday         string `json:"birthday"`
	Sex              string `json:"sex,omitempty"`
	EmailUser        string `json:"email_user,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	TgName           string `json:"tg_name,omitempty"`
	PositionEmployee string `json:"position_employee"`
	Subdivision      string `json:"subdivision"`
	Role             Role   `json:"role"`
	Password         string `json:"password"`
}

// UserFilter narrows the employee list. Empty fields are not sent.
type UserFilter struct {
	FullName         string
	Role             string
	Sex              string
	PositionEmployee string
}

// Query encodes the filter as backend query parameters.
func (f UserFilter) Query() url.Values {
	q := url.Values{}
	if f.FullName != "" {
		q.Set("full_name", f.FullName)
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.Sex != "" {
		q.Set("sex", f.Sex)
	}
	if f.PositionEmployee != "" {
		q.Set("position_employee", f.PositionEmployee)
	}
	return q
}

// Token is the bearer credential issued by the backend's /token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
