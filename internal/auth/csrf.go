package auth

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

const (
	CSRFCookieName = "_csrf"
	CSRFFormField  = "csrf_token"
	CSRFHeader     = "X-CSRF-Token"

	csrfKey = contextKey("csrfToken")
)

// CSRF implements the double-submit cookie pattern: every response carries a random token in a
// cookie, and unsafe requests must echo it in a form field or header.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				sent := r.Header.Get(CSRFHeader)
				if sent == "" {
					sent = r.PostFormValue(CSRFFormField)
				}
				if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
					http.Error(w, "Invalid CSRF token", http.StatusForbidden)
					return
				}
			}

			ctx := context.WithValue(r.Context(), csrfKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken returns the token forms must echo back.
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey).(string)
	return token
}
