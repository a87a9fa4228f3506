package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// NewsHandler serves the news feed, its admin forms and the RSS export.
type NewsHandler struct {
	*Responder
	service   services.NewsServiceProvider
	countdown services.CountdownServiceProvider
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(rs *Responder, service services.NewsServiceProvider, countdown services.CountdownServiceProvider) *NewsHandler {
	return &NewsHandler{Responder: rs, service: service, countdown: countdown}
}

type newsForm struct {
	Title   string
	Content string
}

type newsListPage struct {
	Page      services.NewsPage
	Countdown models.Countdown
	CanCreate bool
}

type newsDetailPage struct {
	News      models.News
	Form      newsForm
	Errors    map[string]string
	CanManage bool
}

type newsFormPage struct {
	Form   newsForm
	Errors map[string]string
}

var newsNotices = map[string]string{
	"updated": "News updated",
	"deleted": "News deleted",
}

// List shows one page of news together with the countdown banner.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))

	page := views.Page{Notice: newsNotices[r.URL.Query().Get("notice")]}
	items, err := h.service.List(r.Context(), pageNum)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		log.Error().Err(err).Msg("Failed to load news")
		page.Error = "Failed to load news"
	}
	page.Data = newsListPage{
		Page:      items,
		Countdown: h.countdown.Current(time.Now()),
		CanCreate: viewer(r).IsAdmin(),
	}
	h.render(w, r, http.StatusOK, "news", "News", page)
}

// Get shows a single news item. Admins get the edit form.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(r)
	if !ok {
		h.notFound(w, r, "News not found")
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case h.sessionExpired(w, r, err):
		case backend.IsNotFound(err):
			h.notFound(w, r, "News not found")
		default:
			h.serverError(w, r, err, "Failed to load news")
		}
		return
	}
	h.renderDetail(w, r, http.StatusOK, item, views.Page{Notice: newsNotices[r.URL.Query().Get("notice")]}, nil, nil)
}

// renderDetail shows item; form and fields carry a rejected edit back to the admin.
func (h *NewsHandler) renderDetail(w http.ResponseWriter, r *http.Request, status int, item models.News, page views.Page, form *newsForm, fields map[string]string) {
	data := newsDetailPage{
		News:      item,
		Form:      newsForm{Title: item.Title, Content: item.Content},
		Errors:    fields,
		CanManage: viewer(r).IsAdmin(),
	}
	if form != nil {
		data.Form = *form
	}
	page.Data = data
	h.render(w, r, status, "news_detail", item.Title, page)
}

// New shows the empty publish form.
func (h *NewsHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "news_form", "Add news", views.Page{Data: newsFormPage{}})
}

// Create publishes a news item and shows a fresh form on success.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := newsForm{Title: r.PostFormValue("title"), Content: r.PostFormValue("content")}

	item, err := h.service.Create(r.Context(), viewer(r), models.NewsCreate{Title: form.Title, Content: form.Content})
	if err == nil {
		log.Info().Int("news_id", item.ID).Msg("News published")
		h.render(w, r, http.StatusCreated, "news_form", "Add news", views.Page{
			Notice: "News created successfully",
			Data:   newsFormPage{},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrForbidden):
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	case h.sessionExpired(w, r, err):
	case fieldErrors(err) != nil:
		h.render(w, r, http.StatusUnprocessableEntity, "news_form", "Add news", views.Page{
			Error: "Please correct the highlighted fields",
			Data:  newsFormPage{Form: form, Errors: fieldErrors(err)},
		})
	default:
		log.Warn().Err(err).Msg("Failed to create news")
		h.render(w, r, http.StatusBadGateway, "news_form", "Add news", views.Page{
			Error: backend.Detail(err, "Failed to create news"),
			Data:  newsFormPage{Form: form},
		})
	}
}

// Update saves the edit form of a news item.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(r)
	if !ok {
		h.notFound(w, r, "News not found")
		return
	}
	form := newsForm{Title: r.PostFormValue("title"), Content: r.PostFormValue("content")}

	_, err := h.service.Update(r.Context(), viewer(r), id, models.NewsUpdate{Title: &form.Title, Content: &form.Content})
	if err == nil {
		http.Redirect(w, r, fmt.Sprintf("/news/%d?notice=updated", id), http.StatusSeeOther)
		return
	}
	h.actionFailure(w, r, id, err, &form, "Failed to update news")
}

// Delete removes a news item.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(r)
	if !ok {
		h.notFound(w, r, "News not found")
		return
	}
	if err := h.service.Delete(r.Context(), viewer(r), id); err != nil {
		h.actionFailure(w, r, id, err, nil, "Failed to delete news")
		return
	}
	http.Redirect(w, r, "/news?notice=deleted", http.StatusSeeOther)
}

// actionFailure re-renders the item with the reason an edit or delete was refused.
func (h *NewsHandler) actionFailure(w http.ResponseWriter, r *http.Request, id int, err error, form *newsForm, message string) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	case h.sessionExpired(w, r, err):
		return
	case backend.IsNotFound(err):
		h.notFound(w, r, "News not found")
		return
	}

	item, getErr := h.service.Get(r.Context(), id)
	if getErr != nil {
		h.serverError(w, r, err, message)
		return
	}

	status := http.StatusBadGateway
	fields := fieldErrors(err)
	var apiErr *backend.APIError
	switch {
	case fields != nil:
		status = http.StatusUnprocessableEntity
		message = "Please correct the highlighted fields"
	case errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError:
		status = apiErr.StatusCode
		message = backend.Detail(err, message)
	default:
		log.Error().Err(err).Int("news_id", id).Msg(message)
	}
	h.renderDetail(w, r, status, item, views.Page{Error: message}, form, fields)
}

// Feed exports the latest news as RSS.
func (h *NewsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	rss, err := h.service.Feed(r.Context(), baseURL(r))
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		log.Error().Err(err).Msg("Failed to build news feed")
		http.Error(w, "Failed to build news feed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(rss))
}

func newsID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// baseURL is the externally visible origin of the request.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
