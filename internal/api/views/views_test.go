package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/isdelr/staff-portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Len(t, r.pages, len(Pages))
}

func TestRenderLayout(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	admin := models.User{ID: 1, FullName: "Olga", Role: models.RoleAdmin}
	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "error", Page{
		Title:     "Access denied",
		CSRFToken: "csrf-value",
		User:      &admin,
		Notice:    "<b>saved</b>",
		Data:      struct{ Message string }{"Only admins"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "Access denied · Staff Portal")
	assert.Contains(t, body, `value="csrf-value"`)
	assert.Contains(t, body, `href="/activity"`, "admins see the activity link")
	assert.Contains(t, body, "&lt;b&gt;saved&lt;/b&gt;", "output is escaped")
	assert.Contains(t, body, "Only admins")
}

func TestRenderAnonymousHasNoNavigation(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusUnauthorized, "login", Page{Error: "Incorrect email or password", Data: struct{ Email string }{"anna@example.com"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), `action="/logout"`)
	assert.Contains(t, rec.Body.String(), `value="anna@example.com"`)
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "missing", Page{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTemplateFuncs(t *testing.T) {
	assert.Equal(t, "14.02.2025", funcs["date"].(func(time.Time) string)(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", funcs["deref"].(func(*string) string)(nil))
	assert.Equal(t, "N/A", funcs["orNA"].(func(string) string)(""))
	assert.Equal(t, "1.0 kB", funcs["bytes"].(func(int64) string)(1000))
}
