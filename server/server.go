// Package server exposes scoring over HTTP next to the Prometheus metrics
// and, when configured, the static results explorer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ughe/tigerscore/metrics"
	"github.com/ughe/tigerscore/normalize"
	"github.com/ughe/tigerscore/score"
)

const maxBody = 8 << 20

// Limits on reference by hypothesis characters. Detail requests build the
// full alignment table, so theirs keeps each table near 32 MiB. Plain scoring
// keeps two rows and is bounded by time only.
const (
	maxDetailCells = 1 << 22
	maxScoreCells  = 1 << 30
)

type ScoreRequest struct {
	Reference  string `json:"reference"`
	Hypothesis string `json:"hypothesis"`
	Detail     bool   `json:"detail"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	addr        string
	explorerDir string
	logger      *slog.Logger
	httpServer  *http.Server
	wg          sync.WaitGroup
}

// New returns a Server listening on addr. An empty explorerDir leaves / unrouted.
func New(addr, explorerDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:        addr,
		explorerDir: explorerDir,
		logger:      logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/score", s.handleScore)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	if s.explorerDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.explorerDir)))
	}
	return s.logRequests(mux)
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()
	s.logger.Info("serving http", slog.String("addr", s.addr), slog.String("explorer", s.explorerDir))

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
		s.logger.Error("http server failed", slog.String("error", runErr.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	s.wg.Wait()
	return runErr
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req ScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	limit, hint := maxScoreCells, ""
	if req.Detail {
		limit, hint = maxDetailCells, ": retry without detail"
	}
	if cells := tableCells(req.Reference, req.Hypothesis); cells > limit {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("alignment needs %d cells, limit is %d%s", cells, limit, hint),
		})
		return
	}

	start := time.Now()
	var (
		body   any
		result score.Result
		err    error
	)
	if req.Detail {
		var detail *score.Detail
		if detail, err = score.Analyze(req.Reference, req.Hypothesis); err == nil {
			body, result = detail, detail.Result
		}
	} else {
		if result, err = score.Evaluate(req.Reference, req.Hypothesis); err == nil {
			body = result
		}
	}
	metrics.ScoreDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, score.ErrEmptyReference) {
			metrics.EmptyReference.Inc()
		}
		if score.IsDomainError(err) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("score failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	metrics.ScoresTotal.Inc()
	metrics.WER.Observe(result.WER)
	metrics.CER.Observe(result.CER)
	writeJSON(w, http.StatusOK, body)
}

// Size of the character edit table, the larger of the word and char tables
func tableCells(reference, hypothesis string) int {
	m := utf8.RuneCountInString(normalize.Normalize(reference))
	n := utf8.RuneCountInString(normalize.Normalize(hypothesis))
	return (m + 1) * (n + 1)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}
