package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autolens/damage-api/internal/application"
	appassess "github.com/autolens/damage-api/internal/application/assessments"
	domain "github.com/autolens/damage-api/internal/domain/assessment"
	"github.com/autolens/damage-api/internal/infra/httpserver"
)

type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []*domain.Assessment
}

func (r *memRepo) Save(_ context.Context, a *domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.records = append(r.records, a)
	return nil
}

func (r *memRepo) ListAll(_ context.Context) ([]*domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Assessment, len(r.records))
	copy(out, r.records)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type stubImages struct {
	url string
	err error
}

func (s *stubImages) Store(context.Context, string, []byte) (string, error) {
	return s.url, s.err
}

type stubModel struct {
	text string
	err  error
}

func (s *stubModel) Assess(context.Context, []byte) (string, error) {
	return s.text, s.err
}

const canonicalResponse = `{
  "damages": [{"part": "front bumper", "damage_type": "dent"}],
  "estimated_cost": {"usd": "50-100", "inr": "4,000-8,000", "jpy": "7500-15000"},
  "notes": "possible hidden bracket damage"
}`

func newHandler(repo *memRepo, model *stubModel) http.Handler {
	svc := &appassess.Service{
		Repo:   repo,
		Images: &stubImages{url: "http://minio.local/uploads/abc.jpg"},
		Model:  model,
		Clock:  application.SystemClock{},
	}
	return httpserver.NewRouter(svc, nil, nil)
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeEndpoint(t *testing.T) {
	repo := &memRepo{}
	handler := newHandler(repo, &stubModel{text: canonicalResponse})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "crash.jpg", []byte("fake image bytes")))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Analysis map[string]any `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.NotContains(t, body.Analysis, "error")
	assert.Equal(t, "dent (front bumper)", body.Analysis["damage_type"])
	assert.Equal(t, "front bumper", body.Analysis["location"])
	assert.Equal(t, 75.0, body.Analysis["cost_usd"])
	assert.Equal(t, 6000.0, body.Analysis["cost_inr"])
	assert.Equal(t, 11250.0, body.Analysis["cost_yen"])
	assert.Equal(t, "http://minio.local/uploads/abc.jpg", body.Analysis["uploadedImage"])

	require.Len(t, repo.records, 1)
	assert.Equal(t, "dent (front bumper)", repo.records[0].DamageType)
}

func TestAnalyzeEndpointModelFailure(t *testing.T) {
	repo := &memRepo{}
	handler := newHandler(repo, &stubModel{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, "crash.jpg", []byte("fake image bytes")))

	// failure is data, not a transport error
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Analysis map[string]any `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Analysis["error"], "assess image")

	assert.Empty(t, repo.records)
}

func TestAnalyzeEndpointMissingFile(t *testing.T) {
	handler := newHandler(&memRepo{}, &stubModel{text: canonicalResponse})

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Analysis map[string]any `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Analysis["error"])
}

func TestHistoryEndpointNewestFirst(t *testing.T) {
	repo := &memRepo{}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(context.Background(), &domain.Assessment{ImagePath: "a.png", DamageType: "dent", CreatedAt: base}))
	require.NoError(t, repo.Save(context.Background(), &domain.Assessment{ImagePath: "b.png", DamageType: "scratch", CreatedAt: base.Add(time.Minute)}))

	handler := newHandler(repo, &stubModel{text: canonicalResponse})
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, 2.0, entries[0]["id"])
	assert.Equal(t, 1.0, entries[1]["id"])
	assert.Equal(t, "b.png", entries[0]["image_path"])

	// timestamps go out as RFC 3339
	_, err := time.Parse(time.RFC3339, entries[0]["created_at"].(string))
	assert.NoError(t, err)
}

func TestHistoryEndpointEmpty(t *testing.T) {
	handler := newHandler(&memRepo{}, &stubModel{text: canonicalResponse})

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
