package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/isdelr/staff-portal/internal/models"
)

// ListNews returns a page of news items.
func (c *Client) ListNews(ctx context.Context, skip, limit int) ([]models.News, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var items []models.News
	if err := c.doJSON(ctx, http.MethodGet, "/news/", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetNews retrieves a single news item.
func (c *Client) GetNews(ctx context.Context, id int) (models.News, error) {
	var item models.News
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/news/%d", id), nil, nil, &item)
	return item, err
}

// CreateNews publishes a news item. Admin only on the backend.
func (c *Client) CreateNews(ctx context.Context, create models.NewsCreate) (models.News, error) {
	var item models.News
	err := c.doJSON(ctx, http.MethodPost, "/news/", nil, create, &item)
	return item, err
}

// UpdateNews patches a news item. The backend only allows the author to do so.
func (c *Client) UpdateNews(ctx context.Context, id int, update models.NewsUpdate) (models.News, error) {
	var item models.News
	err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/news/%d", id), nil, update, &item)
	return item, err
}

// DeleteNews removes a news item. The backend only allows the author to do so.
func (c *Client) DeleteNews(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/news/%d", id), nil, nil, nil)
}
