package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
)

// NewsPage is one page of the news list.
type NewsPage struct {
	Items   []models.News
	Page    int
	HasPrev bool
	HasNext bool
}

// NewsServiceProvider defines the interface for news services.
type NewsServiceProvider interface {
	List(ctx context.Context, page int) (NewsPage, error)
	Get(ctx context.Context, id int) (models.News, error)
	Create(ctx context.Context, viewer models.User, create models.NewsCreate) (models.News, error)
	Update(ctx context.Context, viewer models.User, id int, update models.NewsUpdate) (models.News, error)
	Delete(ctx context.Context, viewer models.User, id int) error
	Feed(ctx context.Context, baseURL string) (string, error)
}

// NewsService provides company news on top of the backend news API.
type NewsService struct {
	client   *backend.Client
	events   EventServiceProvider
	pageSize int
	now      func() time.Time
}

// NewNewsService creates a new NewsService.
func NewNewsService(client *backend.Client, events EventServiceProvider, pageSize int) *NewsService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &NewsService{client: client, events: events, pageSize: pageSize, now: time.Now}
}

// List returns the given 1-based page. One extra item is requested to learn whether a next page
// exists. Pages past the last representable offset are clamped to it.
func (s *NewsService) List(ctx context.Context, page int) (NewsPage, error) {
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt / s.pageSize; page > maxPage {
		page = maxPage
	}
	items, err := s.client.ListNews(ctx, (page-1)*s.pageSize, s.pageSize+1)
	if err != nil {
		return NewsPage{}, err
	}

	result := NewsPage{Page: page, HasPrev: page > 1}
	if len(items) > s.pageSize {
		result.HasNext = true
		items = items[:s.pageSize]
	}
	result.Items = items
	return result, nil
}

// Get returns a single news item.
func (s *NewsService) Get(ctx context.Context, id int) (models.News, error) {
	return s.client.GetNews(ctx, id)
}

// Create publishes a news item. Admin only; title and content must not be blank.
func (s *NewsService) Create(ctx context.Context, viewer models.User, create models.NewsCreate) (models.News, error) {
	if !viewer.IsAdmin() {
		return models.News{}, ErrForbidden
	}

	create.Title = strings.TrimSpace(create.Title)
	create.Content = strings.TrimSpace(create.Content)
	verr := &ValidationError{}
	if create.Title == "" {
		verr.add("title", "Title is required")
	}
	if create.Content == "" {
		verr.add("content", "Content is required")
	}
	if err := verr.orNil(); err != nil {
		return models.News{}, err
	}

	item, err := s.client.CreateNews(ctx, create)
	if err != nil {
		return models.News{}, err
	}
	recordEvent(s.events, "news.create", fmt.Sprintf("News #%d %q published by %s", item.ID, item.Title, viewer.FullName), viewer.ID)
	return item, nil
}

// Update edits a news item. Admin only; the backend additionally requires authorship.
func (s *NewsService) Update(ctx context.Context, viewer models.User, id int, update models.NewsUpdate) (models.News, error) {
	if !viewer.IsAdmin() {
		return models.News{}, ErrForbidden
	}

	verr := &ValidationError{}
	if update.Title != nil {
		if *update.Title = strings.TrimSpace(*update.Title); *update.Title == "" {
			verr.add("title", "Title cannot be empty")
		}
	}
	if update.Content != nil {
		if *update.Content = strings.TrimSpace(*update.Content); *update.Content == "" {
			verr.add("content", "Content cannot be empty")
		}
	}
	if err := verr.orNil(); err != nil {
		return models.News{}, err
	}

	item, err := s.client.UpdateNews(ctx, id, update)
	if err != nil {
		return models.News{}, err
	}
	recordEvent(s.events, "news.update", fmt.Sprintf("News #%d updated by %s", item.ID, viewer.FullName), viewer.ID)
	return item, nil
}

// Delete removes a news item. Admin only; the backend additionally requires authorship.
func (s *NewsService) Delete(ctx context.Context, viewer models.User, id int) error {
	if !viewer.IsAdmin() {
		return ErrForbidden
	}
	if err := s.client.DeleteNews(ctx, id); err != nil {
		return err
	}
	recordEvent(s.events, "news.delete", fmt.Sprintf("News #%d deleted by %s", id, viewer.FullName), viewer.ID)
	return nil
}

// Feed renders the first page of news as RSS 2.0 with links rooted at baseURL.
func (s *NewsService) Feed(ctx context.Context, baseURL string) (string, error) {
	page, err := s.List(ctx, 1)
	if err != nil {
		return "", err
	}

	baseURL = strings.TrimRight(baseURL, "/")
	feed := &feeds.Feed{
		Title:       "Company news",
		Link:        &feeds.Link{Href: baseURL + "/news"},
		Description: "Latest announcements from the staff portal",
		Created:     s.now(),
	}
	for _, item := range page.Items {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/news/%d", baseURL, item.ID),
			Title:       item.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/news/%d", baseURL, item.ID)},
			Description: item.Content,
			Created:     item.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to render news feed: %w", err)
	}
	return rss, nil
}
