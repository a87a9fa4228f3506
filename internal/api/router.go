package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/staff-portal/internal/api/handlers"
	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/auth"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/isdelr/staff-portal/internal/websocket"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Services bundles what the handlers need.
type Services struct {
	Session       services.SessionServiceProvider
	Directory     services.DirectoryServiceProvider
	News          services.NewsServiceProvider
	Notifications services.NotificationServiceProvider
	Documents     services.DocumentServiceProvider
	Events        services.EventServiceProvider
	Countdown     services.CountdownServiceProvider
}

// Options controls cookies and cross-origin access.
type Options struct {
	AllowedOrigins []string
	SecureCookies  bool
	SessionTTL     time.Duration
}

// NewRouter creates and configures a new Chi router.
func NewRouter(db *sql.DB, hub *websocket.Hub, pages *views.Renderer, svc Services, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(middleware.Recoverer)

	// Initialize handlers
	rs := handlers.NewResponder(pages, opts.SecureCookies)
	cookies := auth.CookieOptions{Secure: opts.SecureCookies, TTL: opts.SessionTTL}
	apiHandler := handlers.NewAPIHandler(db, svc.Countdown)
	sessionHandler := handlers.NewSessionHandler(rs, svc.Session, cookies)
	directoryHandler := handlers.NewDirectoryHandler(rs, svc.Directory)
	employeeHandler := handlers.NewEmployeeHandler(rs, svc.Directory)
	newsHandler := handlers.NewNewsHandler(rs, svc.News, svc.Countdown)
	notificationHandler := handlers.NewNotificationHandler(rs, svc.Notifications)
	documentHandler := handlers.NewDocumentHandler(rs, svc.Documents)
	eventHandler := handlers.NewEventHandler(rs, svc.Events)
	wsHandler := handlers.NewWebSocketHandler(hub, svc.Countdown)

	r.Get("/healthz", apiHandler.Health)

	// JSON endpoints other origins may read.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/countdown", apiHandler.Countdown)
	})

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(auth.CSRF(opts.SecureCookies))
		r.Use(auth.Session())

		r.Get("/", sessionHandler.LoginPage)
		r.Post("/login", sessionHandler.Login)
		r.Post("/logout", sessionHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(svc.Session.CurrentUser, "/", opts.SecureCookies))

			r.Get("/dashboard", directoryHandler.Dashboard)
			r.Get("/profile/{id}", directoryHandler.Profile)
			r.Post("/profile/{id}", directoryHandler.UpdateProfile)

			r.Get("/employees/new", employeeHandler.New)
			r.Post("/employees", employeeHandler.Create)

			r.Route("/news", func(r chi.Router) {
				r.Get("/", newsHandler.List)
				r.Get("/feed.rss", newsHandler.Feed)
				r.Get("/{id}", newsHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin("/dashboard"))
					r.Get("/new", newsHandler.New)
					r.Post("/", newsHandler.Create)
					r.Post("/{id}", newsHandler.Update)
					r.Post("/{id}/delete", newsHandler.Delete)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/read", notificationHandler.MarkRead)
				r.Post("/{id}/unblock", notificationHandler.Unblock)
			})

			r.Get("/documents", documentHandler.List)
			r.Get("/documents/{id}", documentHandler.Download)

			r.With(auth.RequireAdmin("/dashboard")).Get("/activity", eventHandler.GetRecent)

			r.Get("/ws/countdown", wsHandler.Countdown)
		})
	})

	return r
}
