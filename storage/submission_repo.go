package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/project-showcase-backend/errs"
	"github.com/rpupo63/project-showcase-backend/models"
)

// recordSuffix is appended to a submission's slug to form its storage key.
const recordSuffix = ".json"

// Buckets names the three storage locations the repository writes to and
// reads from. Presence of a record in Approved is the sole "is it public"
// signal; moving records between Submissions and Approved is done by
// administrative tooling outside this service.
type Buckets struct {
	Submissions string
	Approved    string
	Images      string
}

// SubmissionRepo orchestrates image uploads, slug derivation and JSON record
// persistence on top of an ObjectStore.
type SubmissionRepo struct {
	store         ObjectStore
	buckets       Buckets
	imagesBaseURL string
	logger        zerolog.Logger
	now           func() time.Time

	// OnDrop, when set, is invoked for every approved record that could not
	// be fetched or parsed and was therefore excluded from ListApproved.
	OnDrop func(key string, err error)
}

func NewSubmissionRepo(store ObjectStore, buckets Buckets, imagesBaseURL string) *SubmissionRepo {
	return &SubmissionRepo{
		store:         store,
		buckets:       buckets,
		imagesBaseURL: strings.TrimRight(imagesBaseURL, "/"),
		logger:        log.With().Str("component", "submissionRepo").Logger(),
		now:           time.Now,
	}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordChars  = regexp.MustCompile(`[^\w-]+`)
	hyphenRun     = regexp.MustCompile(`--+`)
)

// Slugify derives the URL segment and storage key from a title: lowercase,
// trim, whitespace runs to a single hyphen, strip everything outside word
// chars and hyphens, collapse hyphen runs. Deterministic and pure. Distinct
// titles can collide ("My Project!" and "My Project?" both slugify to
// "my-project"); the write path overwrites silently in that case.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonWordChars.ReplaceAllString(slug, "")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return slug
}

// UploadImage writes one image to the images bucket under a random filename
// that keeps the original extension, and returns its public URL. There is no
// collision check on the generated name and no cleanup on failure.
func (r *SubmissionRepo) UploadImage(ctx context.Context, img models.ImageFile) (string, error) {
	filename := uuid.NewString() + filepath.Ext(img.Name)

	if err := r.store.Put(ctx, r.buckets.Images, filename, img.Data, img.ContentType); err != nil {
		return "", errs.NewUploadError(img.Name, err)
	}
	return r.imagesBaseURL + "/" + filename, nil
}

// Submit uploads every image concurrently, builds the pending record and
// writes it to the submissions bucket as <slug>.json. Image URLs in the
// result keep the input order regardless of upload completion order. If any
// upload or the record write fails, the whole call fails with a
// SubmissionError; images already uploaded are not rolled back, so orphaned
// objects can remain in the images bucket.
func (r *SubmissionRepo) Submit(ctx context.Context, form models.SubmissionForm, images []models.ImageFile) (*models.Submission, error) {
	id := uuid.New()
	slug := Slugify(form.Title)

	imageURLs := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			url, err := r.UploadImage(gctx, img)
			if err != nil {
				return err
			}
			imageURLs[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errs.NewSubmissionError(err)
	}

	submission := &models.Submission{
		ID:               id,
		Slug:             slug,
		Title:            form.Title,
		Subtitle:         form.Subtitle,
		ShortDescription: form.ShortDescription,
		LongDescription:  form.LongDescription,
		AuthorName:       form.AuthorName,
		AuthorEmail:      form.AuthorEmail,
		AuthorLinkedin:   form.AuthorLinkedin,
		Website:          form.Website,
		Github:           form.Github,
		Youtube:          form.Youtube,
		ImageURLs:        imageURLs,
		CreatedAt:        r.now().UTC(),
		Status:           models.StatusPending,
	}

	body, err := json.MarshalIndent(submission, "", "  ")
	if err != nil {
		return nil, errs.NewSubmissionError(err)
	}

	// Unconditional put: a colliding slug silently overwrites the earlier record.
	key := slug + recordSuffix
	if err := r.store.Put(ctx, r.buckets.Submissions, key, body, "application/json"); err != nil {
		return nil, errs.NewSubmissionError(err)
	}

	r.logger.Info().
		Str("slug", slug).
		Str("id", id.String()).
		Int("images", len(images)).
		Msg("submission stored")

	return submission, nil
}

// ListApproved returns every readable, parseable record in the approved
// bucket. Records that fail to fetch or parse are dropped from the result
// rather than failing the call; each drop is logged and reported through
// OnDrop. Output order follows whatever the store's listing returned. The
// only error returned is a failure of the listing itself.
func (r *SubmissionRepo) ListApproved(ctx context.Context) ([]*models.Submission, error) {
	keys, err := r.store.List(ctx, r.buckets.Approved)
	if err != nil {
		return nil, err
	}

	// Plain errgroup, not WithContext: one bad record must not cancel the rest.
	results := make([]*models.Submission, len(keys))
	var dropped atomic.Int64
	var g errgroup.Group
	for i, key := range keys {
		if !strings.HasSuffix(key, recordSuffix) {
			continue
		}
		g.Go(func() error {
			submission, err := r.fetchApproved(ctx, key)
			if err != nil {
				dropped.Add(1)
				r.drop(key, err)
				return nil
			}
			results[i] = submission
			return nil
		})
	}
	g.Wait()

	submissions := make([]*models.Submission, 0, len(keys))
	for _, s := range results {
		if s != nil {
			submissions = append(submissions, s)
		}
	}

	if n := dropped.Load(); n > 0 {
		r.logger.Warn().Int64("dropped", n).Int("returned", len(submissions)).
			Msg("some approved records were unreadable")
	}
	return submissions, nil
}

// GetBySlug fetches <slug>.json from the approved bucket. A genuinely absent
// key returns (nil, nil); any other failure returns a FetchError so callers
// can log it before degrading to their not-found rendering.
func (r *SubmissionRepo) GetBySlug(ctx context.Context, slug string) (*models.Submission, error) {
	key := slug + recordSuffix

	body, err := r.store.Get(ctx, r.buckets.Approved, key)
	if err != nil {
		if errs.IsObjectNotFound(err) {
			return nil, nil
		}
		return nil, errs.NewFetchError(key, err)
	}

	var submission models.Submission
	if err := json.Unmarshal(body, &submission); err != nil {
		return nil, errs.NewFetchError(key, err)
	}
	return &submission, nil
}

func (r *SubmissionRepo) fetchApproved(ctx context.Context, key string) (*models.Submission, error) {
	body, err := r.store.Get(ctx, r.buckets.Approved, key)
	if err != nil {
		return nil, errs.NewFetchError(key, err)
	}

	var submission models.Submission
	if err := json.Unmarshal(body, &submission); err != nil {
		return nil, errs.NewFetchError(key, err)
	}

	// The public URL must match the actual storage location even if the slug
	// stored inside the body has drifted from the key.
	submission.Slug = strings.TrimSuffix(key, recordSuffix)
	return &submission, nil
}

func (r *SubmissionRepo) drop(key string, err error) {
	r.logger.Warn().Err(err).Str("key", key).Msg("dropping unreadable approved record")
	if r.OnDrop != nil {
		r.OnDrop(key, err)
	}
}
