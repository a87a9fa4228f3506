package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isdelr/staff-portal/internal/models"
)

// Me returns the account the bearer token belongs to.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, nil, &user)
	return user, err
}

// UpdateMe updates the caller's own profile.
func (c *Client) UpdateMe(ctx context.Context, update models.UserUpdate) (models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodPut, "/users/me", nil, update, &user)
	return user, err
}

// ListUsers searches the employee directory.
func (c *Client) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/", filter.Query(), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &user)
	return user, err
}

// UpdateUser updates another user's profile. Admin only on the backend.
func (c *Client) UpdateUser(ctx context.Context, id int, update models.UserUpdate) (models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, update, &user)
	return user, err
}

// CreateUser opens a new employee account. Admin only on the backend.
func (c *Client) CreateUser(ctx context.Context, create models.UserCreate) (models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodPost, "/users/", nil, create, &user)
	return user, err
}

// UnblockUser reactivates an account locked after failed logins.
func (c *Client) UnblockUser(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/users/unblock/%d", id), nil, nil, nil)
}

// ListNotifications returns the caller's notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var items []models.Notification
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/notifications", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotificationRead flags a notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/notifications/%d/read", id), nil, nil, nil)
}
