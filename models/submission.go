package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus tracks where a submission sits in the review lifecycle.
// The transition from pending to approved happens outside this service, by
// moving the record between the pending and approved buckets.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
)

// Submission represents one showcased project, persisted as a JSON object
// keyed by <slug>.json in either the pending or approved bucket.
type Submission struct {
	ID               uuid.UUID        `json:"id"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Subtitle         string           `json:"subtitle"`
	ShortDescription string           `json:"shortDescription"`
	LongDescription  string           `json:"longDescription"`
	AuthorName       string           `json:"authorName"`
	AuthorEmail      string           `json:"authorEmail"`
	AuthorLinkedin   string           `json:"authorLinkedin,omitempty"`
	Website          string           `json:"website,omitempty"`
	Github           string           `json:"github,omitempty"`
	Youtube          string           `json:"youtube,omitempty"`
	ImageURLs        []string         `json:"imageUrls"`
	CreatedAt        time.Time        `json:"createdAt"`
	Status           SubmissionStatus `json:"status"`
}

// SubmissionForm holds the user-supplied fields of a submission. ID, slug,
// image URLs, timestamp and status are filled in by the repository.
type SubmissionForm struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	AuthorName       string `json:"authorName"`
	AuthorEmail      string `json:"authorEmail"`
	AuthorLinkedin   string `json:"authorLinkedin,omitempty"`
	Website          string `json:"website,omitempty"`
	Github           string `json:"github,omitempty"`
	Youtube          string `json:"youtube,omitempty"`
}

// ImageFile is an uploaded image as received from the submission form.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}
