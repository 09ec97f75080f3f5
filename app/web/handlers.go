package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/texpress/app/generate"
	"github.com/umputun/texpress/app/notify"
	"github.com/umputun/texpress/app/typeset"
	"github.com/umputun/texpress/app/web/enums"
	"github.com/umputun/texpress/app/web/persistence"
)

// user visible messages
const (
	msgLatexRequired  = "LaTeX code is required"
	msgCompileFailed  = "Compilation Failed"
	msgInternalError  = "Internal Server Error"
	msgFieldsRequired = "currentResume and jobDescription are required"
	msgGenerateFailed = "Failed to generate LaTeX"
	msgInvalidJSON    = "Invalid JSON body"
)

// GeneratePDFRequest is the body of POST /generate-pdf
type GeneratePDFRequest struct {
	Latex string `json:"latex" jsonschema:"description=LaTeX source of the document,minLength=1"`
}

// GenerateLatexRequest is the body of POST /generate-latex
type GenerateLatexRequest struct {
	CurrentResume  string `json:"currentResume" jsonschema:"description=current resume in LaTeX,minLength=1"`
	JobDescription string `json:"jobDescription" jsonschema:"description=job description to tailor the resume for,minLength=1"`
}

// GenerateLatexResponse is the successful response of POST /generate-latex
type GenerateLatexResponse struct {
	Latex string `json:"latex"`
}

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // compiler diagnostics
	Error   string `json:"error,omitempty"`   // underlying generation error
}

// handleGeneratePDF compiles LaTeX from the request and streams the PDF back.
// The request is not canceled by client disconnect, the compiler runs to completion (or its timeout)
// and job files are removed in any case.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	rec := persistence.JobRecord{Kind: enums.JobKindPDF, StartedAt: time.Now()}

	var req GeneratePDFRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Printf("[WARN] invalid generate-pdf request, %v", err)
		s.rejectJob(rec, err.Error())
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgInvalidJSON})
		return
	}
	rec.InputSize = len(req.Latex)
	if strings.TrimSpace(req.Latex) == "" {
		s.rejectJob(rec, msgLatexRequired)
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgLatexRequired})
		return
	}

	streamed := false
	res, err := s.typesetter.Render(context.WithoutCancel(r.Context()), req.Latex, func(doc typeset.Document) error {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
		w.Header().Set("X-Job-ID", doc.JobID)
		w.WriteHeader(http.StatusOK)
		streamed = true
		_, e := io.Copy(w, doc.Reader)
		return e
	})
	rec.ID, rec.OutputSize, rec.FinishedAt = res.JobID, res.Size, time.Now()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	var compileErr *typeset.CompileError
	switch {
	case err == nil:
		log.Printf("[INFO] job %s compiled, %d bytes sent in %v", rec.ID, res.Size, rec.FinishedAt.Sub(rec.StartedAt))
		rec.Status = enums.JobStatusSuccess
	case errors.Is(err, typeset.ErrEmptySource):
		rec.Status, rec.Details = enums.JobStatusRejected, msgLatexRequired
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgLatexRequired})
	case errors.As(err, &compileErr):
		log.Printf("[WARN] job %s compilation failed, %v", rec.ID, err)
		rec.Status, rec.Details = enums.JobStatusFailed, compileErr.Diagnostics
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgCompileFailed, Details: compileErr.Diagnostics})
		s.reportFailure(notify.Failure{Kind: rec.Kind.String(), JobID: rec.ID, Message: msgCompileFailed, Details: compileErr.Diagnostics})
	case streamed:
		// headers are gone already, nothing to tell the client
		log.Printf("[WARN] job %s failed while sending pdf, %v", rec.ID, err)
		rec.Status, rec.Details = enums.JobStatusError, err.Error()
	default:
		log.Printf("[ERROR] job %s failed, %v", rec.ID, err)
		rec.Status, rec.Details = enums.JobStatusError, err.Error()
		s.writeJSONError(w, http.StatusInternalServerError, ErrorResponse{Message: msgInternalError})
		s.reportFailure(notify.Failure{Kind: rec.Kind.String(), JobID: rec.ID, Message: msgInternalError, Details: err.Error()})
	}
	s.recordJob(rec)
}

// handleGenerateLatex asks the generation service to rewrite the resume for the job description
func (s *Server) handleGenerateLatex(w http.ResponseWriter, r *http.Request) {
	rec := persistence.JobRecord{ID: uuid.NewString(), Kind: enums.JobKindLatex, StartedAt: time.Now()}

	var req GenerateLatexRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Printf("[WARN] invalid generate-latex request, %v", err)
		s.rejectJob(rec, err.Error())
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgInvalidJSON})
		return
	}
	rec.InputSize = len(req.CurrentResume) + len(req.JobDescription)
	if strings.TrimSpace(req.CurrentResume) == "" || strings.TrimSpace(req.JobDescription) == "" {
		s.rejectJob(rec, msgFieldsRequired)
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgFieldsRequired})
		return
	}

	if s.generator == nil {
		rec.FinishedAt, rec.Status, rec.Details = time.Now(), enums.JobStatusFailed, generate.ErrNoCredential.Error()
		s.writeJSONError(w, http.StatusInternalServerError, ErrorResponse{Message: msgGenerateFailed, Error: generate.ErrNoCredential.Error()})
		s.recordJob(rec)
		return
	}

	latex, err := s.generator.Rewrite(context.WithoutCancel(r.Context()), generate.Request{
		CurrentResume:  req.CurrentResume,
		JobDescription: req.JobDescription,
	})
	rec.FinishedAt = time.Now()

	switch {
	case err == nil:
		log.Printf("[INFO] job %s generated %d bytes of latex in %v", rec.ID, len(latex), rec.FinishedAt.Sub(rec.StartedAt))
		rec.Status, rec.OutputSize = enums.JobStatusSuccess, int64(len(latex))
		s.writeJSON(w, http.StatusOK, GenerateLatexResponse{Latex: latex})
	case errors.Is(err, generate.ErrMissingField):
		rec.Status, rec.Details = enums.JobStatusRejected, msgFieldsRequired
		s.writeJSONError(w, http.StatusBadRequest, ErrorResponse{Message: msgFieldsRequired})
	default:
		log.Printf("[WARN] job %s generation failed, %v", rec.ID, err)
		rec.Status, rec.Details = enums.JobStatusFailed, err.Error()
		s.writeJSONError(w, http.StatusInternalServerError, ErrorResponse{Message: msgGenerateFailed, Error: err.Error()})
		s.reportFailure(notify.Failure{Kind: rec.Kind.String(), JobID: rec.ID, Message: msgGenerateFailed, Details: err.Error()})
	}
	s.recordJob(rec)
}

// decodeJSON reads request body into v, an empty body leaves v untouched
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// rejectJob records a job refused before any work was done
func (s *Server) rejectJob(rec persistence.JobRecord, details string) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.FinishedAt, rec.Status, rec.Details = time.Now(), enums.JobStatusRejected, details
	s.recordJob(rec)
}

// recordJob saves job to history if enabled, failures are logged only
func (s *Server) recordJob(rec persistence.JobRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordJob(rec); err != nil {
		log.Printf("[WARN] failed to record job %s, %v", rec.ID, err)
	}
}

// reportFailure sends failure notification in background, failures are logged only
func (s *Server) reportFailure(f notify.Failure) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	go func() {
		if err := s.notifier.Send(context.Background(), f); err != nil {
			log.Printf("[WARN] failed to notify about job %s, %v", f.JobID, err)
		}
	}()
}
