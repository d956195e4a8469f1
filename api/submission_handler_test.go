package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/project-showcase-backend/errs"
	"github.com/rpupo63/project-showcase-backend/models"
	"github.com/rpupo63/project-showcase-backend/storage"
)

// memStore is a minimal in-memory ObjectStore for handler tests.
type memStore struct {
	mu      sync.Mutex
	objects map[string]map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]map[string][]byte)}
}

func (m *memStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string][]byte)
	}
	m.objects[bucket][key] = append([]byte(nil), body...)
	return nil
}

func (m *memStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[bucket][key]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", bucket, key, errs.ErrObjectNotFound)
	}
	return append([]byte(nil), body...), nil
}

func (m *memStore) List(ctx context.Context, bucket string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects[bucket]))
	for key := range m.objects[bucket] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

var handlerTestBuckets = storage.Buckets{
	Submissions: "submissions",
	Approved:    "approved",
	Images:      "images",
}

func newTestRouter(store storage.ObjectStore) http.Handler {
	repo := storage.NewSubmissionRepo(store, handlerTestBuckets, "https://images.example.com")
	return newRouter(repo, withConfig(map[string]string{}), withStartupTime(time.Now()))
}

func submissionFormBody(t *testing.T, fields map[string]string, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for _, name := range imageNames {
		fw, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"title":            "Test Project",
		"subtitle":         "A subtitle",
		"shortDescription": "Short description",
		"longDescription":  "Long description with **markdown**",
		"authorName":       "Ada Lovelace",
		"authorEmail":      "ada@example.com",
		"github":           "https://github.com/ada/project",
	}
}

func TestCreateSubmission(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	body, contentType := submissionFormBody(t, validFields(), []string{"one.png", "two.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var submission models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submission))
	assert.Equal(t, "test-project", submission.Slug)
	assert.Equal(t, models.StatusPending, submission.Status)
	assert.Len(t, submission.ImageURLs, 2)

	// The record landed in the pending bucket, not the approved one
	_, err := store.Get(context.Background(), handlerTestBuckets.Submissions, "test-project.json")
	assert.NoError(t, err)
	_, err = store.Get(context.Background(), handlerTestBuckets.Approved, "test-project.json")
	assert.True(t, errs.IsObjectNotFound(err))
}

func TestCreateSubmissionMissingRequiredField(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	fields := validFields()
	delete(fields, "title")
	body, contentType := submissionFormBody(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "title", errResp.Field)
}

func TestCreateSubmissionRejectsNonMultipartBody(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewBufferString(`{"title":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProjectsReturnsApproved(t *testing.T) {
	store := newMemStore()
	seedApprovedRecord(t, store, "alpha", "Alpha")
	seedApprovedRecord(t, store, "beta", "Beta")
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var collection SubmissionCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	assert.Equal(t, 2, collection.Total)
	require.Len(t, collection.Projects, 2)
}

func TestGetProjectsEmptyBucket(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var collection SubmissionCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	assert.Equal(t, 0, collection.Total)
	assert.NotNil(t, collection.Projects)
}

func TestGetProjectBySlug(t *testing.T) {
	store := newMemStore()
	seedApprovedRecord(t, store, "alpha", "Alpha")
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/project/alpha", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var submission models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submission))
	assert.Equal(t, "Alpha", submission.Title)
}

func TestGetProjectNotFound(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/project/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
}

func seedApprovedRecord(t *testing.T, store *memStore, slug, title string) {
	t.Helper()
	record := models.Submission{
		Slug:             slug,
		Title:            title,
		Subtitle:         "sub",
		ShortDescription: "short",
		LongDescription:  "long",
		AuthorName:       "Ada",
		AuthorEmail:      "ada@example.com",
		CreatedAt:        time.Now().UTC(),
		Status:           models.StatusApproved,
	}
	body, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), handlerTestBuckets.Approved, slug+".json", body, "application/json"))
}
