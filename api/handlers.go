package api

import (
	"time"

	"github.com/rpupo63/project-showcase-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(repo *storage.SubmissionRepo, config map[string]string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		submissionHandler: newSubmissionHandler(repo, config),
		healthHandler:     newHealthHandler(startupTime),
	}
}
