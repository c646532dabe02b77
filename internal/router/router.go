package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-social-api/internal/config"
	"go-social-api/internal/handler"
	"go-social-api/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Audit   *handler.AuditHandler
	Post    *handler.PostHandler
	Comment *handler.CommentHandler
	Like    *handler.LikeHandler
	// Health reports whether the backing store is reachable. Nil means
	// always healthy.
	Health func(ctx context.Context) error
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", health(h.Health))

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"message":"pong"}}`))
		})

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(authMiddleware.RequireAuthAllowRevoked).Post("/logout", h.Auth.Logout)
		})

		api.With(authMiddleware.RequireAuth).Get("/user/profile", h.User.Profile)
		api.With(authMiddleware.RequireAuth).Put("/user/profile", h.User.UpdateProfile)
		api.With(authMiddleware.RequireAuth).Delete("/user/profile", h.User.DeleteAccount)
		api.With(authMiddleware.RequireAuth).Get("/user/activity", h.Audit.Activity)

		api.With(authMiddleware.RequireAuth).Post("/posts", h.Post.Create)
		api.With(authMiddleware.RequireAuth).Get("/posts", h.Post.List)
		api.With(authMiddleware.RequireAuth).Get("/posts/{post_id}", h.Post.Get)
		api.With(authMiddleware.RequireAuth).Put("/posts/{post_id}", h.Post.Update)
		api.With(authMiddleware.RequireAuth).Delete("/posts/{post_id}", h.Post.Delete)

		api.With(authMiddleware.RequireAuth).Get("/posts/{post_id}/comments", h.Comment.ListByPost)
		api.With(authMiddleware.RequireAuth).Post("/comments", h.Comment.Create)
		api.With(authMiddleware.RequireAuth).Put("/comments/{comment_id}", h.Comment.Update)
		api.With(authMiddleware.RequireAuth).Delete("/comments/{comment_id}", h.Comment.Delete)
		api.With(authMiddleware.RequireAuth).Get("/users/{user_id}/comments", h.Comment.ListByUser)

		api.With(authMiddleware.RequireAuth).Post("/posts/{post_id}/like", h.Like.Toggle)
		api.With(authMiddleware.RequireAuth).Get("/posts/{post_id}/likes", h.Like.Likes)
		api.With(authMiddleware.RequireAuth).Get("/posts/{post_id}/liked", h.Like.IsLiked)
	})

	return r
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
