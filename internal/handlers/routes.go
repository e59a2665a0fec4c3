package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vaughan-dsouza/fitness/internal/logging"
	"github.com/vaughan-dsouza/fitness/internal/middleware"
)

// PicturePrefix is the URL path stored profile pictures are served under.
const PicturePrefix = "/static/profile_pics/"

type RouterConfig struct {
	CORSOrigins []string
	PictureDir  string
	// AuthLimiter throttles register and login submissions when set.
	AuthLimiter *middleware.RateLimiter
	Health      func(ctx context.Context) error
}

// corsOptions allows credentials only for an explicit origin list. With a
// wildcard the session cookie is never shared cross-origin.
func corsOptions(origins []string) cors.Options {
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}

func (h *Handler) Routes(cfg RouterConfig) chi.Router {
	app := h.App
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(app.Log))
	r.Use(app.Metrics.Instrument)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))
	r.Use(middleware.Identity(app.Sessions, app.Users, app.Log))

	r.Method(http.MethodGet, "/metrics", app.Metrics.Handler())
	if cfg.Health != nil {
		r.Get("/healthz", Health(cfg.Health))
	}
	if cfg.PictureDir != "" {
		r.Handle(PicturePrefix+"*", http.StripPrefix(PicturePrefix, http.FileServer(http.Dir(cfg.PictureDir))))
	}

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.AuthLimiter != nil {
		throttle = cfg.AuthLimiter.Handler
	}

	// Public
	r.Get("/", h.Pages.Home)
	r.Get("/home", h.Pages.Home)
	r.Get("/about", h.Pages.About)
	r.Get("/logout", h.Auth.Logout)
	r.Get("/user/{username}", h.Users.UserPosts)
	r.Get("/post/{id}", h.Posts.GetPost)
	r.Get("/post/{id}/comments", h.Comments.ListComments)
	r.Get("/post/{id}/comment/{commentID}", h.Comments.GetComment)

	// Anonymous only
	r.Group(func(r chi.Router) {
		r.Use(middleware.AnonymousOnly)

		r.Get("/register", h.Auth.RegisterForm)
		r.With(throttle).Post("/register", h.Auth.Register)
		r.Get("/login", h.Auth.LoginForm)
		r.With(throttle).Post("/login", h.Auth.Login)
	})

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin)

		r.Get("/account", h.Auth.Account)
		r.Post("/account", h.Auth.UpdateAccount)

		r.Get("/post/new", h.Posts.NewForm)
		r.Post("/post/new", h.Posts.CreatePost)
		r.Get("/post/{id}/update", h.Posts.EditForm)
		r.Post("/post/{id}/update", h.Posts.UpdatePost)
		r.Post("/post/{id}/delete", h.Posts.DeletePost)

		r.Get("/post/{id}/comment/new", h.Comments.NewForm)
		r.Post("/post/{id}/comment/new", h.Comments.CreateComment)
	})

	return r
}
