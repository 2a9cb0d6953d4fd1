package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quillpad/quillpad-be/internal/api/handlers"
	"github.com/quillpad/quillpad-be/internal/auth"
	"github.com/quillpad/quillpad-be/internal/events"
	"github.com/quillpad/quillpad-be/internal/models"
	"github.com/quillpad/quillpad-be/internal/services"
)

// RouterDeps bundles everything the router needs to wire up handlers.
type RouterDeps struct {
	Tokens        *auth.TokenManager
	Users         services.UserServiceProvider
	Posts         services.PostServiceProvider
	Events        services.EventServiceProvider
	FeedHub       *events.Hub
	AllowedOrigin string
	SecureCookies bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens, deps.Events, deps.SecureCookies)
	postHandler := handlers.NewPostHandler(deps.Posts, deps.Users, deps.Events)
	userHandler := handlers.NewUserHandler(deps.Users, deps.Posts)
	adminHandler := handlers.NewAdminHandler(deps.Users, deps.Posts, deps.Events)
	feedHandler := handlers.NewFeedHandler(deps.FeedHub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(deps.Tokens.Authenticate).Get("/profile", authHandler.Profile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.Get)

			// Everything that mutates requires a valid token.
			r.Group(func(r chi.Router) {
				r.Use(deps.Tokens.Authenticate)
				r.Post("/", postHandler.Create)
				r.Put("/{id}", postHandler.Update)
				r.Delete("/{id}", postHandler.Delete)
				r.Put("/{id}/like", postHandler.Like)
				r.Put("/{id}/unlike", postHandler.Unlike)
				r.Post("/{id}/comment", postHandler.AddComment)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", userHandler.GetProfile)
			r.With(deps.Tokens.Authenticate).Put("/profile", userHandler.UpdateProfile)
		})

		// All admin routes require the admin role.
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.Tokens.Authenticate)
			r.Use(auth.RequireRole(models.RoleAdmin))

			r.Get("/stats", adminHandler.Stats)
			r.Get("/users", adminHandler.ListUsers)
			r.Delete("/users/{id}", adminHandler.DeleteUser)
			r.Get("/posts", adminHandler.ListPosts)
			r.Delete("/posts/{id}", adminHandler.DeletePost)
			r.Get("/feed", feedHandler.Serve)
		})
	})

	return r
}
