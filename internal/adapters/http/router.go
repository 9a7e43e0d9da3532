// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/boardstate/internal/adapters/http/middleware"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
//
// Request/response routes under /api/v1 run under a requestTimeout deadline.
// The /events streams are long-lived and are registered outside of it. A zero
// requestTimeout disables the deadline.
func NewRouter(
	taskHandler *handlers.TaskHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	healthHandler *handlers.HealthHandler,
	requestTimeout time.Duration,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if requestTimeout > 0 {
				r.Use(middleware.Timeout(requestTimeout))
			}

			// Task board.
			r.Get("/tasks", taskHandler.GetBoard)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Put("/tasks/drag", taskHandler.DragTask)
			r.Patch("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)

			// Users and the current-user selection.
			r.Get("/users", userHandler.ListUsers)
			r.Post("/users", userHandler.CreateUser)
			r.Get("/users/current", userHandler.GetCurrentUser)
			r.Put("/users/current", userHandler.SetCurrentUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)

			// Product catalog.
			r.Get("/products", productHandler.ListProducts)
			r.Post("/products", productHandler.CreateProduct)
			r.Get("/products/{id}", productHandler.GetProduct)
			r.Patch("/products/{id}", productHandler.UpdateProduct)
			r.Delete("/products/{id}", productHandler.DeleteProduct)
		})

		// Server-sent event streams.
		r.Get("/tasks/events", taskHandler.Events)
		r.Get("/users/events", userHandler.Events)
		r.Get("/products/events", productHandler.Events)
	})

	return r
}
