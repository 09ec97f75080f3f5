package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"

	"github.com/umputun/texpress/app/sysinfo"
	"github.com/umputun/texpress/app/web/persistence"
)

const (
	defaultJobsLimit = 50
	maxJobsLimit     = 500
)

// APIStatusResponse is the JSON response for /api/v1/status
type APIStatusResponse struct {
	Version   string             `json:"version"`
	StartedAt time.Time          `json:"started_at"`
	Uptime    string             `json:"uptime"`
	Settings  Settings           `json:"settings"`
	System    sysinfo.Snapshot   `json:"system"`
	History   *persistence.Stats `json:"history,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// APIJob represents a job in JSON API response
type APIJob struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	DurationMs int64     `json:"duration_ms"`
	InputSize  int       `json:"input_size"`
	OutputSize int64     `json:"output_size"`
	Details    string    `json:"details,omitempty"`
}

// APIJobsResponse is the JSON response for /api/v1/jobs
type APIJobsResponse struct {
	Jobs []APIJob `json:"jobs"`
}

// toAPIJob converts persistence.JobRecord to APIJob
func toAPIJob(rec persistence.JobRecord) APIJob {
	return APIJob{
		ID:         rec.ID,
		Kind:       rec.Kind.String(),
		Status:     rec.Status.String(),
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
		DurationMs: rec.FinishedAt.Sub(rec.StartedAt).Milliseconds(),
		InputSize:  rec.InputSize,
		OutputSize: rec.OutputSize,
		Details:    rec.Details,
	}
}

// handleAPIStatus returns service status, settings and host metrics
func (s *Server) handleAPIStatus(w http.ResponseWriter, _ *http.Request) {
	snap, err := sysinfo.Collect(s.settings.WorkDir)
	if err != nil {
		log.Printf("[WARN] incomplete system info, %v", err)
	}

	resp := APIStatusResponse{
		Version:   s.version,
		StartedAt: s.startedAt,
		Uptime:    time.Since(s.startedAt).Truncate(time.Second).String(),
		Settings:  s.settings,
		System:    snap,
		Timestamp: time.Now(),
	}

	if s.store != nil {
		st, err := s.store.Stats()
		if err != nil {
			log.Printf("[ERROR] failed to get job stats: %v", err)
		} else {
			resp.History = &st
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleAPIJobs returns recent jobs, newest first. Query param limit caps the number of jobs.
func (s *Server) handleAPIJobs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSONError(w, http.StatusNotFound, ErrorResponse{Message: "job history is disabled"})
		return
	}

	limit := defaultJobsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: "invalid limit"})
			return
		}
		limit = min(n, maxJobsLimit)
	}

	recs, err := s.store.ListJobs(limit)
	if err != nil {
		log.Printf("[ERROR] failed to list jobs: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, ErrorResponse{Message: "failed to load job history"})
		return
	}

	jobs := make([]APIJob, 0, len(recs))
	for _, rec := range recs {
		jobs = append(jobs, toAPIJob(rec))
	}
	s.writeJSON(w, http.StatusOK, APIJobsResponse{Jobs: jobs})
}

// handleAPIJob returns a single job by id
func (s *Server) handleAPIJob(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSONError(w, http.StatusNotFound, ErrorResponse{Message: "job history is disabled"})
		return
	}

	id := r.PathValue("id")
	rec, err := s.store.GetJob(id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, ErrorResponse{Message: "job not found"})
			return
		}
		log.Printf("[ERROR] failed to get job %s: %v", id, err)
		s.writeJSONError(w, http.StatusInternalServerError, ErrorResponse{Message: "failed to load job"})
		return
	}
	s.writeJSON(w, http.StatusOK, toAPIJob(rec))
}

// handleAPISchema returns JSON schemas of request bodies, keyed by route
func (s *Server) handleAPISchema(w http.ResponseWriter, _ *http.Request) {
	r := jsonschema.Reflector{DoNotReference: true}
	resp := map[string]*jsonschema.Schema{
		"generate-pdf":   r.Reflect(&GeneratePDFRequest{}),
		"generate-latex": r.Reflect(&GenerateLatexRequest{}),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, resp ErrorResponse) {
	s.writeJSON(w, status, resp)
}
