package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadResponse is returned after a successful upload
type uploadResponse struct {
	JobID string `json:"job_id"`
}

// statusResponse mirrors the progress poll of the web frontend
type statusResponse struct {
	Job  Job    `json:"job"`
	Logs string `json:"logs"`
	Done bool   `json:"done"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("ifcfile")
	if err != nil {
		httpError(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer file.Close()

	name := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".ifc") {
		httpError(w, http.StatusBadRequest, "invalid file type, expected .ifc")
		return
	}

	id := uuid.NewString()
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		httpError(w, http.StatusInternalServerError, "upload dir unavailable")
		return
	}
	uploadPath := filepath.Join(s.cfg.UploadDir, id+"_"+name)
	if err := saveUpload(uploadPath, file); err != nil {
		s.logger.Error("save upload failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	s.store.Create(id, name)
	go s.runJob(id, uploadPath)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(uploadResponse{JobID: id})
}

// runJob executes the pipeline in the background and records the
// outcome in the job store
func (s *Server) runJob(id, uploadPath string) {
	s.store.Logf(id, "processing %s", filepath.Base(uploadPath))

	resultFile, err := s.pipeline.RunFile(uploadPath, s.cfg.ResultDir)
	if err != nil {
		s.logger.Error("job failed", zap.String("job", id), zap.Error(err))
		s.store.Logf(id, "error: %v", err)
		s.store.Fail(id, err)
		return
	}

	s.store.Logf(id, "done: %s", resultFile)
	s.store.Finish(id, resultFile)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, _ *http.Request, id string) {
	job, logs, ok := s.store.Get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "unknown job")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		Job:  job,
		Logs: logs,
		Done: job.State == JobDone,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, name string) {
	name = sanitizeFilename(name)
	path := filepath.Join(s.cfg.ResultDir, name)
	if _, err := os.Stat(path); err != nil {
		httpError(w, http.StatusNotFound, "result file not found")
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

// sanitizeFilename strips any path component from a client-supplied
// filename
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
