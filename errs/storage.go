package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Object-storage specific errors. ErrObjectNotFound marks a genuinely absent
// key, a normal outcome on the read path rather than a failure.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrUpload         = errors.New("image upload failed")
	ErrSubmission     = errors.New("submission failed")
	ErrFetch          = errors.New("record fetch failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrObjectNotFound),
	}
}

// NewUploadError wraps a failed write of a single image to the images bucket.
func NewUploadError(filename string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpload,
		Details:    fmt.Sprintf("Failed to upload image %s", filename),
		Cause:      cause,
		Field:      "images",
	}
}

// NewSubmissionError wraps whichever step of a submission failed first, an
// image upload or the JSON record write. Images uploaded before the failure
// are not rolled back.
func NewSubmissionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrSubmission,
		Details:    "Failed to submit project",
		Cause:      cause,
	}
}

// NewFetchError wraps a failed read or parse of an individual stored record.
func NewFetchError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrFetch,
		Details:    fmt.Sprintf("Failed to read record %s", key),
		Cause:      cause,
	}
}

func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUpload)
}

func IsSubmissionError(err error) bool {
	return errors.Is(err, ErrSubmission)
}

func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetch)
}
