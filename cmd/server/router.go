package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listkeep/listkeep-api/internal/api"
	apiMiddleware "github.com/listkeep/listkeep-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.Server.CORSAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apiMiddleware.APIKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.RequireAPIKey(app.config.Auth.APIKey))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.googleVerifier, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	listHandler := api.NewListHandler(app.listService, app.taskService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.listService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/google", authHandler.GoogleLogin)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Share links are public; the handler applies visibility rules,
		// so a signed-in owner can still open their own private link.
		r.With(authMiddleware.OptionalAuthenticate).
			Get("/lists/shared/{token}", listHandler.GetShared)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account endpoints
			r.Get("/users/me", userHandler.GetMe)
			r.Patch("/users/me", userHandler.UpdateMe)
			r.Put("/users/me/password", userHandler.UpdatePassword)
			r.Delete("/users/me", userHandler.DeleteMe)

			// List endpoints
			r.Post("/lists", listHandler.Create)
			r.Get("/lists", listHandler.List)
			r.Get("/lists/{listID}", listHandler.Get)
			r.Patch("/lists/{listID}", listHandler.Update)
			r.Delete("/lists/{listID}", listHandler.Delete)
			r.Post("/lists/{listID}/clear", listHandler.Clear)
			r.Post("/lists/{listID}/rollover", listHandler.Rollover)

			// Task endpoints
			r.Post("/lists/{listID}/tasks", taskHandler.Create)
			r.Get("/lists/{listID}/tasks", taskHandler.List)
			r.Get("/lists/{listID}/versions/{version}/tasks", taskHandler.ListVersion)
			r.Get("/tasks/{taskID}", taskHandler.Get)
			r.Patch("/tasks/{taskID}", taskHandler.Update)
			r.Delete("/tasks/{taskID}", taskHandler.Delete)
			r.Post("/tasks/{taskID}/toggle", taskHandler.ToggleComplete)
			r.Post("/tasks/{taskID}/toggle-priority", taskHandler.TogglePriority)
			r.Post("/tasks/{taskID}/toggle-recurring", taskHandler.ToggleRecurring)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
