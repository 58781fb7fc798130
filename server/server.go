// Package server exposes the reader as a JSON REST API.
//
// Endpoints:
//
//	POST /api/analyze    body: {"text":"..."}
//	GET  /api/conjugate?citation=<word>&class=<code>
//	GET  /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"japanesereader/analyze"
	"japanesereader/config"
	"japanesereader/conjugate"
	"japanesereader/ingest"
	"japanesereader/metrics"
)

const maxBodyBytes = 1 << 20

// Analyzer reports on a sentence.
type Analyzer interface {
	Analyze(ctx context.Context, s ingest.Sentence) (analyze.Report, error)
}

// Conjugator builds the full paradigm of a citation form.
type Conjugator interface {
	Conjugate(citation, class string) (*conjugate.Paradigm, error)
}

type Server struct {
	cfg      config.ServerConfig
	analyzer Analyzer
	conj     Conjugator
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func New(cfg config.ServerConfig, a Analyzer, c Conjugator, m *metrics.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		analyzer: a,
		conj:     c,
		metrics:  m,
		log:      slog.Default().With("component", "server"),
	}
}

// Handler returns the routed API wrapped in the configured CORS policy.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/conjugate", s.handleConjugate)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Reports []analyze.Report `json:"reports"`
}

type conjugateResponse struct {
	Citation string          `json:"citation"`
	Class    string          `json:"class"`
	Table    conjugate.Table `json:"table"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sentences := ingest.Lines(req.Text)
	if len(sentences) == 0 {
		writeError(w, http.StatusBadRequest, "missing 'text'")
		return
	}

	resp := analyzeResponse{Reports: make([]analyze.Report, 0, len(sentences))}
	for _, sent := range sentences {
		rep, err := s.analyzer.Analyze(r.Context(), sent)
		if err != nil {
			s.log.Error("analyze failed", "sentence", sent.ID, "err", err)
			writeError(w, http.StatusInternalServerError, "analysis failed")
			return
		}
		resp.Reports = append(resp.Reports, rep)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConjugate(w http.ResponseWriter, r *http.Request) {
	citation := r.URL.Query().Get("citation")
	class := r.URL.Query().Get("class")
	if citation == "" || class == "" {
		writeError(w, http.StatusBadRequest, "missing 'citation' or 'class' query parameter")
		return
	}
	p, err := s.conj.Conjugate(citation, class)
	switch {
	case errors.Is(err, conjugate.ErrUnknownClass):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.log.Error("conjugate failed", "citation", citation, "class", class, "err", err)
		writeError(w, http.StatusInternalServerError, "conjugation failed")
		return
	}
	writeJSON(w, http.StatusOK, conjugateResponse{Citation: p.Citation, Class: p.Class, Table: p.Table})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
