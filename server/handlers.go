package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/ingestion"
	"github.com/storytrail/storytrail/search"
)

// maxUploadBytes bounds the in-memory portion of a multipart parse; larger
// file parts spill to disk.
const maxUploadBytes = 32 << 20

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return "sess-" + uuid.NewString()[:8]
}

// handleIngest accepts a multipart upload of images, videos, and text under
// one session. A session path segment of "-" mints a fresh session.
//
// Form fields: "images", "videos", "text_files" (repeatable file parts),
// "direct_text", and optional "cadence_seconds" / "max_frames" sampling
// overrides.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	session := mux.Vars(r)["session"]
	if session == "-" {
		session = NewSessionID()
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	spoolDir, err := os.MkdirTemp("", "storytrail-upload-*")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.RemoveAll(spoolDir)

	req := &ingestion.Request{
		SessionID:  session,
		DirectText: r.FormValue("direct_text"),
	}

	if v := r.FormValue("cadence_seconds"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cadence_seconds %q", v))
			return
		}
		req.Cadence = time.Duration(secs * float64(time.Second))
	}
	if v := r.FormValue("max_frames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid max_frames %q", v))
			return
		}
		req.MaxFrames = n
	}

	form := r.MultipartForm
	if req.Images, err = spoolFiles(form.File["images"], spoolDir, "images"); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if req.Videos, err = spoolFiles(form.File["videos"], spoolDir, "videos"); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if req.TextFiles, err = spoolFiles(form.File["text_files"], spoolDir, "texts"); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	summary, err := s.pipeline.Ingest(r.Context(), req)
	if err != nil {
		s.logger.Error("ingestion failed", "session_id", session, "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

type searchRequest struct {
	Query      string `json:"query"`
	Collection string `json:"collection"`
	NResults   int    `json:"n_results"`
}

type searchResponse struct {
	Query   string `json:"query"`
	Results any    `json:"results,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleSearch answers a JSON search request. Domain-level failures (blank
// query, unknown collection) come back with status 200 and an error field so
// clients can render them inline; malformed requests and infrastructure
// failures use error status codes.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	results, err := s.searcher.Search(r.Context(), req.Query, req.Collection, req.NResults)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) || errors.Is(err, search.ErrUnknownCollection) {
			s.writeJSON(w, http.StatusOK, searchResponse{Query: req.Query, Error: err.Error()})
			return
		}
		s.logger.Error("search failed", "collection", req.Collection, "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, searchResponse{Query: req.Query, Results: results})
}

// handleCollections reports, for each known collection, whether it exists in
// the index yet.
func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	collections := make(map[string]bool, len(core.KnownCollections()))
	for _, name := range core.KnownCollections() {
		exists, err := s.index.HasCollection(r.Context(), name)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		collections[name] = exists
	}

	s.writeJSON(w, http.StatusOK, map[string]map[string]bool{"collections": collections})
}

// spoolFiles writes uploaded parts into a subdirectory of spoolDir,
// preserving client filenames.
func spoolFiles(parts []*multipart.FileHeader, spoolDir, kind string) ([]string, error) {
	if len(parts) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(parts))
	for i, part := range parts {
		dir := filepath.Join(spoolDir, kind, fmt.Sprintf("%d", i))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}

		name := filepath.Base(part.Filename)
		if name == "." || name == string(filepath.Separator) {
			name = "upload"
		}

		src, err := part.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded part %s: %w", part.Filename, err)
		}

		destPath := filepath.Join(dir, name)
		dst, err := os.Create(destPath)
		if err != nil {
			src.Close()
			return nil, err
		}

		_, err = io.Copy(dst, src)
		src.Close()
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, fmt.Errorf("failed to spool uploaded part %s: %w", part.Filename, err)
		}

		paths = append(paths, destPath)
	}
	return paths, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
