
// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"content-quality-analyzer/internal/analyzer"
	"content-quality-analyzer/internal/models"
	"content-quality-analyzer/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

type batchReq struct {
	Items []models.AnalyzeRequest `json:"items"`
}

type Server struct {
	analyzer    *analyzer.Analyzer
	log         *logger.Logger
	concurrency int
}

func New(a *analyzer.Analyzer, l *logger.Logger, batchConcurrency int) *Server {
	return &Server{analyzer: a, log: l, concurrency: batchConcurrency}
}

// Handler returns the routed mux wrapped in request-id and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /analyze", s.analyze)
	mux.HandleFunc("POST /analyze/batch", s.analyzeBatch)
	return requestID(logRequest(s.log, mux))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /analyze  {"url": "https://..."} or {"text": "..."}
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	res, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			s.log.Errorf("request %s: analyze failed: %v", RequestIDFrom(r.Context()), err)
		}
		writeError(w, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /analyze/batch  {"items": [{"url": "..."}, {"text": "..."}]}
func (s *Server) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid payload: items required")
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.AnalyzeBatch(r.Context(), req.Items, s.concurrency))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analyzer.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, analyzer.ErrAcquisition):
		return http.StatusBadGateway
	default:
		// includes classifier.ErrArtifactUnavailable
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

type ctxKey struct{}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequest(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		l.Infof("%s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start), RequestIDFrom(r.Context()))
	})
}
