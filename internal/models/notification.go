package models

import "time"

// Notification is a message addressed to the current user.
type Notification struct {
	ID        int               `json:"id"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"is_read"`
	CreatedAt time.Time         `json:"created_at"`
	Data      *NotificationData `json:"data,omitempty"`
}

// NotificationData is the optional structured payload of a notification.
type NotificationData struct {
	BlockedUserID *int `json:"blocked_user_id,omitempty"`
}

// BlockedUserID returns the account the notification asks an admin to unblock, if any.
func (n Notification) BlockedUserID() (int, bool) {
	if n.Data == nil || n.Data.BlockedUserID == nil || *n.Data.BlockedUserID == 0 {
		return 0, false
	}
	return *n.Data.BlockedUserID, true
}
