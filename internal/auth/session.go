package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/rs/zerolog/log"
)

// CookieName is the cookie holding the backend bearer token.
const CookieName = "_token"

// Claims defines the part of the backend token the portal reads.
type Claims struct {
	jwt.RegisteredClaims
}

type contextKey string

const (
	UserClaimsKey  = contextKey("userClaims")
	CurrentUserKey = contextKey("currentUser")
)

// ParseClaims decodes the token payload without checking the signature; the signing key lives
// in the backend, which verifies every request anyway. Expired tokens are rejected.
func ParseClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("token expired at %s", claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return claims, nil
}

// TokenFromRequest returns the bearer token from the Authorization header, falling back to the
// session cookie.
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && token != "" {
			return token
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// SetSessionCookie stores the token. The cookie expires with the token when it carries an exp
// claim, otherwise after opts.TTL.
func SetSessionCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	expires := time.Now().Add(opts.TTL)
	if claims, err := ParseClaims(token); err == nil && claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Session attaches a usable token and its claims to the request context. It never rejects.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := TokenFromRequest(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ParseClaims(tokenStr)
			if err != nil {
				log.Debug().Err(err).Msg("Ignoring unusable session token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := backend.ContextWithToken(r.Context(), tokenStr)
			ctx = context.WithValue(ctx, UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HasSession reports whether Session found a usable token.
func HasSession(ctx context.Context) bool {
	_, ok := backend.TokenFromContext(ctx)
	return ok
}

// ClaimsFromContext returns the claims stored by Session.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

// UserFetcher loads the account behind the token in ctx.
type UserFetcher func(ctx context.Context) (models.User, error)

// RequireUser redirects to loginPath unless the session resolves to a backend account, which is
// then stored in the context. A rejected token also clears the cookie.
func RequireUser(fetch UserFetcher, loginPath string, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasSession(r.Context()) {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			user, err := fetch(r.Context())
			if err != nil {
				if backend.IsUnauthorized(err) {
					ClearSessionCookie(w, secureCookie)
					http.Redirect(w, r, loginPath, http.StatusFound)
					return
				}
				// The login page sends live sessions back here, so an outage must not redirect.
				log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to load current user")
				http.Error(w, "Staff service unavailable", http.StatusBadGateway)
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin redirects non-admin users to redirectTo. It must run after RequireUser.
func RequireAdmin(redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok || !user.IsAdmin() {
				http.Redirect(w, r, redirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser returns the account stored by RequireUser.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(CurrentUserKey).(models.User)
	return user, ok
}
