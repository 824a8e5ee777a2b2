package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storytrail/storytrail/ai/mock"
	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/index/badger"
	"github.com/storytrail/storytrail/ingestion"
	"github.com/storytrail/storytrail/media"
	"github.com/storytrail/storytrail/search"
)

type stubDecoder struct{}

func (stubDecoder) Duration(_ context.Context, _ string) (time.Duration, error) {
	return 4 * time.Second, nil
}

func (stubDecoder) ExtractFrame(_ context.Context, _ string, _ time.Duration, outPath string) error {
	return os.WriteFile(outPath, []byte("jpg"), 0o644)
}

func setupServer(t *testing.T) (*Server, *badger.Index) {
	t.Helper()

	idx, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	provider := mock.NewMockProvider()

	sampler, err := media.NewFrameSampler(stubDecoder{})
	require.NoError(t, err)

	pipeline, err := ingestion.NewPipeline(media.NewStore(t.TempDir()), sampler, provider, idx)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	searcher, err := search.NewSearcher(provider.Embedder(), idx)
	require.NoError(t, err)

	s, err := New(pipeline, searcher, idx)
	require.NoError(t, err)
	return s, idx
}

func multipartBody(t *testing.T, files map[string][]string, directText string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = io.WriteString(part, "content of "+name)
			require.NoError(t, err)
		}
	}
	if directText != "" {
		require.NoError(t, writer.WriteField("direct_text", directText))
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestNew_RequiresDependencies(t *testing.T) {
	s, idx := setupServer(t)

	_, err := New(nil, s.searcher, idx)
	assert.ErrorIs(t, err, ErrPipelineRequired)

	_, err = New(s.pipeline, nil, idx)
	assert.ErrorIs(t, err, ErrSearcherRequired)

	_, err = New(s.pipeline, s.searcher, nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}

func TestServer_Ingest(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	body, contentType := multipartBody(t, map[string][]string{
		"images":     {"beach.jpg", "dog.png"},
		"videos":     {"clip.mp4"},
		"text_files": {"notes.txt"},
	}, "remember the llama")

	resp, err := http.Post(ts.URL+"/api/sessions/sess-1/ingest", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary core.IngestionSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))

	assert.Equal(t, "sess-1", summary.SessionID)
	assert.Equal(t, 2, summary.IndexedCounts["images"])
	// 4s at the default 2s cadence yields 2 frames.
	assert.Equal(t, 2, summary.IndexedCounts["videos"])
	assert.Equal(t, 2, summary.IndexedCounts["texts"])
	assert.Empty(t, summary.Failures)
}

func TestServer_Ingest_MintsSession(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	body, contentType := multipartBody(t, nil, "just text")
	resp, err := http.Post(ts.URL+"/api/sessions/-/ingest", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary core.IngestionSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.True(t, strings.HasPrefix(summary.SessionID, "sess-"))
	assert.NotEqual(t, "sess-", summary.SessionID)
}

func TestServer_Ingest_RejectsNonMultipart(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/sessions/sess-1/ingest", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Search(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	// Ingest some text first so the texts collection has entries.
	body, contentType := multipartBody(t, nil, "notes about a mountain hike")
	resp, err := http.Post(ts.URL+"/api/sessions/sess-1/ingest", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reqBody, err := json.Marshal(map[string]any{
		"query":      "mountain",
		"collection": core.CollectionTexts,
		"n_results":  5,
	})
	require.NoError(t, err)

	resp, err = http.Post(ts.URL+"/api/search", "application/json", bytes.NewReader(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Query   string              `json:"query"`
		Results []core.SearchResult `json:"results"`
		Error   string              `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "mountain", got.Query)
	assert.Empty(t, got.Error)
	require.Len(t, got.Results, 1)
	assert.True(t, strings.HasPrefix(got.Results[0].ID, "txt-"))
	assert.NotNil(t, got.Results[0].Distance)
}

func TestServer_Search_DomainErrorsAreOK(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "blank query", body: map[string]any{"query": "  ", "collection": core.CollectionTexts}},
		{name: "unknown collection", body: map[string]any{"query": "llama", "collection": "documents"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBody, err := json.Marshal(tt.body)
			require.NoError(t, err)

			resp, err := http.Post(ts.URL+"/api/search", "application/json", bytes.NewReader(reqBody))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var got searchResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.NotEmpty(t, got.Error)
			assert.Nil(t, got.Results)
		})
	}
}

func TestServer_Search_MalformedBody(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/search", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Collections(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/collections")
	require.NoError(t, err)
	var got map[string]map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, map[string]bool{
		core.CollectionTexts:  false,
		core.CollectionPhotos: false,
		core.CollectionVideos: false,
	}, got["collections"])

	body, contentType := multipartBody(t, nil, "some text")
	resp, err = http.Post(ts.URL+"/api/sessions/sess-1/ingest", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/collections")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, map[string]bool{
		core.CollectionTexts:  true,
		core.CollectionPhotos: false,
		core.CollectionVideos: false,
	}, got["collections"])
}

func TestServer_Ingest_SamplingOverrides(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("videos", "clip.mp4")
	require.NoError(t, err)
	_, err = io.WriteString(part, "video-bytes")
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("cadence_seconds", "1"))
	require.NoError(t, writer.WriteField("max_frames", "2"))
	require.NoError(t, writer.Close())

	resp, err := http.Post(ts.URL+"/api/sessions/sess-1/ingest", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary core.IngestionSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	// 4s at 1s cadence would yield 4 frames; max_frames caps it at 2.
	assert.Equal(t, 2, summary.IndexedCounts["videos"])
}

func TestServer_Ingest_InvalidSamplingOverride(t *testing.T) {
	s, _ := setupServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("cadence_seconds", "fast"))
	require.NoError(t, writer.Close())

	resp, err := http.Post(ts.URL+"/api/sessions/sess-1/ingest", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.True(t, strings.HasPrefix(a, "sess-"))
	assert.NotEqual(t, a, b)
}
