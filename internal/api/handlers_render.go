package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrender/internal/pipeline"
	"github.com/dgallion1/docrender/internal/source"
	"github.com/go-chi/chi/v5"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	themeName := strings.TrimSpace(r.FormValue("theme"))
	if themeName != "" {
		if _, ok := s.orchestrator.Themes().Get(themeName); !ok {
			jsonError(w, fmt.Sprintf("unknown theme: %s", themeName), http.StatusBadRequest)
			return
		}
	}

	job := pipeline.NewJob(filename, r.FormValue("title"), themeName, data)

	// An uploaded theme overrides the named one.
	if tf, th, err := r.FormFile("theme_file"); err == nil {
		defer tf.Close()
		t, err := decodeTheme(tf, th.Filename, "")
		if err != nil {
			writeThemeError(w, err)
			return
		}
		job.SetTheme(t)
	}

	if err := s.orchestrator.Submit(job); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		jsonError(w, err.Error(), status)
		return
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":       snap.ID,
		"status":       snap.Status,
		"content_hash": snap.ContentHash,
		"poll_url":     fmt.Sprintf("/api/render/%s/status", snap.ID),
	})
}

func (s *Server) handleRenderStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	resp := map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"theme":    snap.ThemeName,
		"progress": snap.Progress,
	}
	if snap.Status == pipeline.StatusCompleted {
		resp["document_url"] = fmt.Sprintf("/api/render/%s/document", snap.ID)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	data, ok := job.Result()
	if !ok {
		jsonError(w, fmt.Sprintf("job is %s", job.Snapshot().Status), http.StatusConflict)
		return
	}

	snap := job.Snapshot()
	name := strings.TrimSuffix(snap.Filename, filepath.Ext(snap.Filename)) + ".docx"
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
