package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	app "github.com/goliatone/go-jobboard/pkg/application"
)

// HTTPError lets errors carry their own HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError wraps an error with an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }

func (e *StatusError) StatusCode() int { return e.Code }

// ValidationError reports required questions that are missing an answer.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("application: %d field(s) failed validation", len(e.Fields))
}

func (e *ValidationError) StatusCode() int { return http.StatusUnprocessableEntity }

type submitRequest struct {
	JobID    flexibleID  `json:"jobId"`
	FormData *app.Record `json:"formData"`
}

// flexibleID accepts both "42" and 42 on the wire.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexibleID(n.String())
	return nil
}

type submitResponse struct {
	Success       bool  `json:"success"`
	CandidateID   int64 `json:"candidateId"`
	ApplicationID int64 `json:"applicationId"`
}

type errorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// Handler returns the submission endpoint handler with default options.
func Handler() http.Handler {
	return HandlerWithOptions()
}

// HandlerWithOptions returns the submission endpoint handler configured by the
// given options.
func HandlerWithOptions(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return &handler{opts: opts}
}

type handler struct {
	opts Options
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	if h.opts.Submitter == nil {
		h.opts.Logger.Printf("application: no submitter configured")
		writeError(w, http.StatusServiceUnavailable, "submission is not available", nil)
		return
	}

	var req submitRequest
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.JobID == "" {
		writeError(w, http.StatusBadRequest, "jobId is required", nil)
		return
	}
	if req.FormData == nil {
		req.FormData = app.NewRecord()
	}

	ctx := r.Context()
	jobID := string(req.JobID)

	if verr := h.validateRequired(r, jobID, req.FormData); verr != nil {
		writeError(w, verr.StatusCode(), "some required questions are missing answers", verr.Fields)
		return
	}

	receipt, err := h.opts.Submitter.Submit(ctx, jobID, req.FormData)
	if err != nil {
		h.writeSubmitError(w, jobID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(submitResponse{
		Success:       true,
		CandidateID:   receipt.CandidateID,
		ApplicationID: receipt.ApplicationID,
	})
}

// validateRequired checks the record against the job's question schema. A
// schema lookup failure is logged and the submission proceeds unchecked so a
// flaky read path cannot block applicants; the upstream rejects truly invalid
// payloads anyway.
func (h *handler) validateRequired(r *http.Request, jobID string, record *app.Record) *ValidationError {
	if h.opts.Schemas == nil {
		return nil
	}
	form, err := h.opts.Schemas.Schema(r.Context(), jobID)
	if err != nil {
		h.opts.Logger.Printf("application: schema lookup for job %s failed: %v", jobID, err)
		return nil
	}

	fields := map[string][]string{}
	for _, q := range form.Questions {
		if q.Required && !record.HasAnswer(q.Name) {
			fields[q.Name] = append(fields[q.Name], "is required")
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (h *handler) writeSubmitError(w http.ResponseWriter, jobID string, err error) {
	var serr *app.SubmissionError
	if errors.As(err, &serr) {
		status := http.StatusBadGateway
		if serr.Status >= 400 && serr.Status < 500 {
			status = serr.Status
		}
		writeError(w, status, serr.Message, nil)
		return
	}

	h.opts.Logger.Printf("application: submit for job %s failed: %v", jobID, err)
	writeError(w, http.StatusBadGateway, "application could not be submitted", nil)
}

func writeGuardError(w http.ResponseWriter, err error) {
	status := http.StatusForbidden
	var herr HTTPError
	if errors.As(err, &herr) {
		status = herr.StatusCode()
	}
	writeError(w, status, err.Error(), nil)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string][]string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Success: false,
		Error:   message,
		Fields:  fields,
	})
}
