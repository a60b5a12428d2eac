// Package server assembles the HTTP router: global middleware, the student
// API behind the auth filter, API docs, a health probe and the static web client.
package server

import (
	"log/slog"
	"net/http"
	"path/filepath"

	// `chi` is a lightweight, idiomatic and composable router for building HTTP services in Go.
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	// `chi/cors` provides CORS (Cross-Origin Resource Sharing) middleware.
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/auth"
	"github.com/user/studentsvc/config"
	_ "github.com/user/studentsvc/docs" // Swagger spec registration
	"github.com/user/studentsvc/logging"
	"github.com/user/studentsvc/students"
	"github.com/user/studentsvc/users"
)

// Deps are the already-wired components the router mounts.
type Deps struct {
	Tokens   *auth.TokenService
	Students *students.Handlers
	Users    *users.UserHandlers
	Logger   *logging.SlogLogger
}

// NewRouter builds the application's http.Handler.
func NewRouter(cfg *config.AppConfig, deps Deps) http.Handler {
	r := chi.NewRouter()

	// IMPORTANT: Chi requires all middleware to be registered before any routes
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(deps.Logger.Slog().Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.TokenHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(recoverJSON(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		auth.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Every student route sits behind the auth filter; nothing under /students
	// reaches the record store without a valid credential.
	r.Route("/students", func(r chi.Router) {
		r.Use(auth.Middleware(deps.Tokens, deps.Logger))
		deps.Students.RegisterRoutes(r)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(auth.Middleware(deps.Tokens, deps.Logger))
		r.Get("/me", deps.Users.HandleGetMe())
	})

	mountStatic(r, cfg.Server)

	return r
}

// recoverJSON turns a panic into the standard JSON error body.
func recoverJSON(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error(r.Context(), "panic while serving request",
						"request_id", middleware.GetReqID(r.Context()),
						"panic", rvr,
					)
					auth.WriteError(w, r, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// mountStatic serves the web client: the index page at `/`, stylesheets and scripts below it.
func mountStatic(r chi.Router, cfg *config.ServerConfig) {
	if cfg.WebDir != "" {
		index := filepath.Join(cfg.WebDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
	}
	if cfg.CSSDir != "" {
		r.Get("/css/*", http.StripPrefix("/css/", http.FileServer(http.Dir(cfg.CSSDir))).ServeHTTP)
	}
	if cfg.JSDir != "" {
		r.Get("/js/*", http.StripPrefix("/js/", http.FileServer(http.Dir(cfg.JSDir))).ServeHTTP)
	}
}
