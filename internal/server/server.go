// Package server exposes the takeoff pipeline over HTTP: upload an IFC
// file, poll the processing job, download the finished reports.
package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rverbeek/ifctakeoff/internal/config"
	"github.com/rverbeek/ifctakeoff/internal/process"
)

// Server routes takeoff requests on a plain http.ServeMux
type Server struct {
	mux      *http.ServeMux
	cfg      *config.Config
	pipeline *process.Pipeline
	store    *JobStore
	logger   *zap.Logger
}

func New(cfg *config.Config, pipeline *process.Pipeline, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mux:      http.NewServeMux(),
		cfg:      cfg,
		pipeline: pipeline,
		store:    NewJobStore(),
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.handleUpload(w, r)
	})

	s.mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.handleJobStatus(w, r, id)
	})

	s.mux.HandleFunc("/api/results/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/api/results/")
		if name == "" || strings.Contains(name, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.handleDownload(w, r, name)
	})

	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// ListenAndServe blocks serving HTTP on the configured address
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", zap.String("addr", s.cfg.ListenAddr))
	return http.ListenAndServe(s.cfg.ListenAddr, s)
}
