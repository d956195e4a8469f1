package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes consumed by the site frontend
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Submission Handler endpoints
		r.Get("/projects", handlers.submissionHandler.getApprovedProjects())
		r.Get("/project/{slug}", handlers.submissionHandler.getProject())
		r.Post("/submit", handlers.submissionHandler.createSubmission())

		// Health endpoint
		r.Get("/health", handlers.healthHandler.health())
	})
}
