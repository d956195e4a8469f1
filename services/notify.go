package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-showcase-backend/config"
	"github.com/rpupo63/project-showcase-backend/models"
)

// ResendEmailRequest represents the request payload for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from the Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from the Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// NotifySubmissionReceived emails the configured reviewer that a new
// submission landed in the pending bucket. Approval is a manual, out-of-band
// step, so without this mail nobody learns a submission exists.
//
// Required configuration:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: sender address (e.g., "Showcase <noreply@example.com>")
//   - SUBMISSION_NOTIFY_EMAIL: reviewer address
//
// When any of these are missing the notification is skipped silently; the
// feature is optional and must never block or fail a submission.
func NotifySubmissionReceived(cfg map[string]string, submission *models.Submission) error {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	notifyEmail := config.GetString(cfg, "SUBMISSION_NOTIFY_EMAIL", "")
	if apiKey == "" || fromEmail == "" || notifyEmail == "" {
		log.Debug().Msg("Submission notification not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("New submission pending review: %s", submission.Title)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> — %s</p><p>%s</p><p>By %s (%s)</p><p>Record: %s.json (%d images)</p>",
		submission.Title,
		submission.Subtitle,
		submission.ShortDescription,
		submission.AuthorName,
		submission.AuthorEmail,
		submission.Slug,
		len(submission.ImageURLs),
	)

	payload := ResendEmailRequest{
		From:    fromEmail,
		To:      []string{notifyEmail},
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read email response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ResendErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	var emailResp ResendEmailResponse
	if err := json.Unmarshal(respBody, &emailResp); err != nil {
		return fmt.Errorf("failed to parse email response: %w", err)
	}

	log.Info().
		Str("emailID", emailResp.ID).
		Str("slug", submission.Slug).
		Msg("Submission notification sent")
	return nil
}
