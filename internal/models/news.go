package models

import "time"

// News is a company news item.
type News struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedBy int        `json:"created_by"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewsCreate is the payload for publishing a news item.
type NewsCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewsUpdate contains optional fields that can be changed on a news item.
type NewsUpdate struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
