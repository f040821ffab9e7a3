// Package chi exposes the HTTP API: ingest endpoints for storage events and
// direct writes, and the free-text search endpoint.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photodex/internal/domain"
	healthuc "github.com/kailas-cloud/photodex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/photodex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/photodex/internal/usecase/search"
)

// Server wires the usecase services to HTTP handlers.
type Server struct {
	bucket string
	ingest *ingestuc.Service
	search *searchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server. bucket is the default bucket for
// direct writes that omit one.
func NewServer(
	bucket string,
	ingest *ingestuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		bucket: bucket,
		ingest: ingest,
		search: search,
		health: health,
		logger: logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/events", s.handleEvents)
	r.Post("/v1/photos", s.handlePhotos)
	r.Get("/v1/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type eventRecord struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type eventsRequest struct {
	Records []eventRecord `json:"records"`
	JobID   string        `json:"job_id"`
}

type photoRequest struct {
	Bucket string   `json:"bucket"`
	Key    string   `json:"key"`
	Labels []string `json:"labels"`
	JobID  string   `json:"job_id"`
}

type ingestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type searchResponse struct {
	Results []searchuc.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleEvents processes a storage-change notification. Only the first record
// is ingested, matching the one-object-per-event delivery of the store.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var req eventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, "records is required")
		return
	}

	rec := req.Records[0]
	if rec.Bucket == "" || rec.Key == "" {
		writeError(w, http.StatusBadRequest, "record bucket and key are required")
		return
	}

	s.runIngest(w, r, ingestuc.Request{
		Bucket: rec.Bucket,
		Key:    rec.Key,
		JobID:  req.JobID,
	})
}

// handlePhotos ingests a photo named directly in the request.
func (s *Server) handlePhotos(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	bucket := req.Bucket
	if bucket == "" {
		bucket = s.bucket
	}

	s.runIngest(w, r, ingestuc.Request{
		Bucket:      bucket,
		Key:         req.Key,
		ExtraLabels: req.Labels,
		JobID:       req.JobID,
	})
}

func (s *Server) runIngest(w http.ResponseWriter, r *http.Request, req ingestuc.Request) {
	res, err := s.ingest.Ingest(r.Context(), req)
	if err != nil {
		s.logger.Error("ingest failed",
			zap.String("bucket", req.Bucket),
			zap.String("object_key", req.Key),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, ingestResponse{
			Status:  "error",
			Message: "ingest failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		Status:  "ok",
		Message: "indexed " + res.Bucket + "/" + res.Key,
	})
}

// handleSearch answers GET /v1/search?q=... with presigned hits.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.search.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "query must not be empty")
			return
		}
		s.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if results == nil {
		results = []searchuc.Result{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// handleHealth reports component health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
		"photos": report.Photos,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
