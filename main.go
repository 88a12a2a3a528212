package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"Cinelog/config"
	"Cinelog/database"
	"Cinelog/handlers"
	"Cinelog/logger"
	"Cinelog/middleware"
	"Cinelog/services"

	"github.com/go-chi/chi/v5"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	// Initialize session store
	services.InitSessionStore(cfg)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Poster object storage is optional; without it the poster URL form field
	// is used as-is
	if err := services.InitPosterStore(context.Background(), cfg); err != nil {
		slog.Warn("Poster storage disabled", "error", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.MethodOverride)

	// Static files
	fs := http.FileServer(http.Dir("static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	// Public routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/movies", http.StatusSeeOther)
	})
	r.Get("/register", handlers.ShowRegisterHandler)
	r.Post("/register", handlers.RegisterHandler)
	r.Get("/login", handlers.ShowLoginHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Post("/logout", handlers.LogoutHandler)

	// Protected routes
	r.With(middleware.RequireAuth).Get("/profile", handlers.ProfileHandler)

	r.Route("/movies", func(r chi.Router) {
		// Reads are public
		r.Get("/", handlers.MoviesHandler)
		r.Get("/{id}", handlers.MovieDetailsHandler)
		r.Get("/{id}/comment", handlers.CommentRedirectHandler)

		// Mutations require a session; edit/update/delete additionally
		// require ownership, checked in the handlers
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/add", handlers.AddMovieFormHandler)
			r.Post("/add", handlers.CreateMovieHandler)
			r.Get("/{id}/edit", handlers.EditMovieFormHandler)
			r.Put("/{id}", handlers.UpdateMovieHandler)
			r.Delete("/{id}", handlers.DeleteMovieHandler)
			r.Post("/{id}/like", handlers.LikeMovieHandler)
			r.Post("/{id}/comment", handlers.CommentMovieHandler)
		})
	})

	addr := ":" + cfg.ServerPort
	slog.Info("Cinelog is starting", "addr", addr, "environment", cfg.Environment, "debug", cfg.Debug)

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
