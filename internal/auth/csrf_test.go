package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfHandler() http.Handler {
	return CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(CSRFToken(r.Context())))
	}))
}

func TestCSRFIssuesTokenOnSafeRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CSRFCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
}

func TestCSRFReusesExistingCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "known"})
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, r)

	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, "known", rec.Body.String())
}

func TestCSRFValidatesUnsafeRequests(t *testing.T) {
	post := func(formToken, headerToken string) int {
		form := url.Values{}
		if formToken != "" {
			form.Set(CSRFFormField, formToken)
		}
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if headerToken != "" {
			r.Header.Set(CSRFHeader, headerToken)
		}
		r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "expected"})
		rec := httptest.NewRecorder()
		csrfHandler().ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("expected", ""))
	assert.Equal(t, http.StatusOK, post("", "expected"))
	assert.Equal(t, http.StatusForbidden, post("", ""))
	assert.Equal(t, http.StatusForbidden, post("forged", ""))
}
