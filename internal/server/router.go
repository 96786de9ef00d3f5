// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/radif/mediadrop/internal/auth"
	"github.com/radif/mediadrop/internal/files"
	"github.com/radif/mediadrop/internal/metrics"
	appMiddleware "github.com/radif/mediadrop/internal/middleware"
)

// Deps are the handlers and collaborators the router mounts.
type Deps struct {
	Auth     *auth.Handler
	Files    *files.Handler
	Sessions appMiddleware.SessionValidator
	Limiter  *appMiddleware.LoginLimiter

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Off, the login limiter keys on the socket peer.
	TrustProxy bool

	// AllowedOrigins lists the dashboard origins allowed to call the API with credentials.
	AllowedOrigins []string
}

// NewRouter returns the API router.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	if d.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// Swagger UI at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(d.Limiter.Handler).Post("/", d.Auth.Login)
			r.Get("/", d.Auth.Status)
			r.Delete("/", d.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireSession(d.Sessions))
			r.Get("/files", d.Files.List)
			r.Get("/files/*", d.Files.Get)
			r.Delete("/files/*", d.Files.Delete)
			r.Post("/upload", d.Files.Upload)
			r.Get("/usage", d.Files.Usage)
		})
	})

	return r
}
