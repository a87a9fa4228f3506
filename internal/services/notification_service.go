package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/samber/lo"
)

// NotificationServiceProvider defines the interface for notification services.
type NotificationServiceProvider interface {
	List(ctx context.Context, viewer models.User) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int) error
	Unblock(ctx context.Context, viewer models.User, notificationID int) (int, error)
}

// NotificationService lists notifications and acts on them. Notifications resolved through
// the portal are hidden per viewer in the local database.
type NotificationService struct {
	client *backend.Client
	db     *sql.DB
	events EventServiceProvider
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(client *backend.Client, db *sql.DB, events EventServiceProvider) *NotificationService {
	return &NotificationService{client: client, db: db, events: events}
}

// List returns the viewer's notifications that have not been hidden.
func (s *NotificationService) List(ctx context.Context, viewer models.User) ([]models.Notification, error) {
	items, err := s.client.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}

	hidden, err := s.hiddenIDs(viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read hidden notifications: %w", err)
	}
	return lo.Filter(items, func(n models.Notification, _ int) bool {
		return !hidden[n.ID]
	}), nil
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	return s.client.MarkNotificationRead(ctx, id)
}

// Unblock reactivates the account a notification reports as blocked, marks the notification
// read and hides it for the viewer. It returns the unblocked user id. Admin only.
func (s *NotificationService) Unblock(ctx context.Context, viewer models.User, notificationID int) (int, error) {
	if !viewer.IsAdmin() {
		return 0, ErrForbidden
	}

	items, err := s.client.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}
	notification, found := lo.Find(items, func(n models.Notification) bool {
		return n.ID == notificationID
	})
	if !found {
		return 0, ErrNotificationNotFound
	}
	blockedID, ok := notification.BlockedUserID()
	if !ok {
		return 0, ErrNotBlockNotification
	}

	if err := s.client.UnblockUser(ctx, blockedID); err != nil {
		return 0, err
	}
	if err := s.client.MarkNotificationRead(ctx, notificationID); err != nil {
		return 0, err
	}
	if _, err := s.db.Exec("INSERT OR IGNORE INTO hidden_notifications(user_id, notification_id) VALUES (?, ?)", viewer.ID, notificationID); err != nil {
		return 0, fmt.Errorf("failed to hide notification: %w", err)
	}

	recordEvent(s.events, "user.unblock", fmt.Sprintf("User #%d unblocked by %s", blockedID, viewer.FullName), viewer.ID)
	return blockedID, nil
}

func (s *NotificationService) hiddenIDs(userID int) (map[int]bool, error) {
	rows, err := s.db.Query("SELECT notification_id FROM hidden_notifications WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hidden := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		hidden[id] = true
	}
	return hidden, rows.Err()
}
