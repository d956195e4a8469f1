package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-showcase-backend/errs"
	"github.com/rpupo63/project-showcase-backend/models"
	"github.com/rpupo63/project-showcase-backend/services"
	"github.com/rpupo63/project-showcase-backend/storage"
)

// maxSubmissionBytes bounds the multipart form held in memory per request.
const maxSubmissionBytes = 32 << 20 // 32MB

type submissionHandler struct {
	responder Responder
	logger    zerolog.Logger
	repo      *storage.SubmissionRepo
	config    map[string]string
}

func newSubmissionHandler(repo *storage.SubmissionRepo, config map[string]string) submissionHandler {
	logger := log.With().Str("handlerName", "submissionHandler").Logger()

	return submissionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
		config:    config,
	}
}

// SubmissionCollection represents the public list of approved submissions
type SubmissionCollection struct {
	Projects []*models.Submission `json:"projects"`
	Total    int                  `json:"total"`
}

// getApprovedProjects returns every approved submission. Records that could
// not be read are already excluded by the repository; a failed listing
// degrades to an empty collection rather than an error page.
func (h submissionHandler) getApprovedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := h.repo.ListApproved(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to list approved submissions")
			submissions = nil
		}

		if submissions == nil {
			submissions = []*models.Submission{}
		}

		h.responder.WriteJSON(w, SubmissionCollection{
			Projects: submissions,
			Total:    len(submissions),
		})
	}
}

// getProject returns one approved submission by slug. Absence and a failed
// read both render as 404; the read failure is logged first so the two
// remain distinguishable in the process logs.
func (h submissionHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		submission, err := h.repo.GetBySlug(r.Context(), slug)
		if err != nil {
			h.logger.Error().Err(err).Str("slug", slug).Msg("Failed to fetch submission")
		}

		if submission == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, submission)
	}
}

// createSubmission accepts the multipart submission form, validates the
// required fields and hands off to the repository. On success the stored
// record is echoed back with status 201.
func (h submissionHandler) createSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
		if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
			h.logger.Error().Err(err).Msg("Failed to parse submission form")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}

		form := models.SubmissionForm{
			Title:            r.FormValue("title"),
			Subtitle:         r.FormValue("subtitle"),
			ShortDescription: r.FormValue("shortDescription"),
			LongDescription:  r.FormValue("longDescription"),
			AuthorName:       r.FormValue("authorName"),
			AuthorEmail:      r.FormValue("authorEmail"),
			AuthorLinkedin:   r.FormValue("authorLinkedin"),
			Website:          r.FormValue("website"),
			Github:           r.FormValue("github"),
			Youtube:          r.FormValue("youtube"),
		}

		required := []struct {
			name  string
			value string
		}{
			{"title", form.Title},
			{"subtitle", form.Subtitle},
			{"shortDescription", form.ShortDescription},
			{"longDescription", form.LongDescription},
			{"authorName", form.AuthorName},
			{"authorEmail", form.AuthorEmail},
		}
		for _, field := range required {
			if field.value == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field.name))
				return
			}
		}

		images, err := h.readImages(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read submitted images")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("images", err))
			return
		}

		submission, err := h.repo.Submit(r.Context(), form, images)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Reviewer notification is best-effort and never blocks the response
		go func() {
			if err := services.NotifySubmissionReceived(h.config, submission); err != nil {
				h.logger.Error().Err(err).Str("slug", submission.Slug).Msg("Failed to send submission notification")
			}
		}()

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, submission)
	}
}

// readImages reads every uploaded file under the "images" field fully into
// memory, keeping form order.
func (h submissionHandler) readImages(r *http.Request) ([]models.ImageFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	fileHeaders := r.MultipartForm.File["images"]
	images := make([]models.ImageFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		images = append(images, models.ImageFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return images, nil
}
