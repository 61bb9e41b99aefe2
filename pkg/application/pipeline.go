package application

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/question"
)

// Attachment type tags recognised by the upstream candidate resource.
const (
	attachmentTypeResume      = "resume"
	attachmentTypeCoverLetter = "cover_letter"
	attachmentTypeOther       = "other"

	coverLetterFilename    = "cover_letter.txt"
	coverLetterContentType = "text/plain"
)

// SubmissionError carries the upstream failure text for display to the
// candidate. Status is zero for transport failures.
type SubmissionError struct {
	Status  int
	Message string
	err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("application: submission failed: %s", e.Message)
	}
	return "application: submission failed"
}

func (e *SubmissionError) Unwrap() error { return e.err }

// Receipt identifies the created candidate and its first application entry.
// ApplicationID is zero when the upstream response carried no entries.
type Receipt struct {
	CandidateID   int64 `json:"candidateId"`
	ApplicationID int64 `json:"applicationId,omitempty"`
}

// CandidateCreator is the single upstream write the pipeline depends on.
// *greenhouse.Client satisfies it.
type CandidateCreator interface {
	CreateCandidate(ctx context.Context, candidate greenhouse.CandidateRequest) (*greenhouse.Candidate, error)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger injects the logger used for submission outcomes.
func WithLogger(logger *log.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pipeline turns a form value record into exactly one upstream candidate
// request per submit. It never retries and performs no rollback: it makes no
// persistent writes of its own. Submitting identical data twice creates two
// upstream candidates; the upstream API offers no idempotency key.
//
// Pipeline is safe for concurrent use: it keeps no per-submission state, so
// one shared instance serves unrelated applicants. Re-entry from a single
// form session is the surface's concern; the browser runtime and the
// terminal flow each gate their own session.
type Pipeline struct {
	creator CandidateCreator
	logger  *log.Logger
}

// NewPipeline constructs a Pipeline around the given creator.
func NewPipeline(creator CandidateCreator, options ...PipelineOption) (*Pipeline, error) {
	if creator == nil {
		return nil, fmt.Errorf("application: candidate creator is required")
	}
	p := &Pipeline{creator: creator, logger: log.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p, nil
}

// Submit sends the record for jobID upstream. The pipeline does not
// re-validate required-ness; that is the rendering layer's contract.
func (p *Pipeline) Submit(ctx context.Context, jobID string, record *Record) (Receipt, error) {
	if record == nil {
		return Receipt{}, &SubmissionError{Message: "no form data provided"}
	}

	numericID, err := strconv.ParseInt(jobID, 10, 64)
	if err != nil {
		return Receipt{}, &SubmissionError{Message: fmt.Sprintf("invalid job id %q", jobID), err: err}
	}

	request := BuildCandidateRequest(numericID, record)

	created, err := p.creator.CreateCandidate(ctx, request)
	if err != nil {
		p.logger.Printf("application: submit job %d: %v", numericID, err)
		return Receipt{}, asSubmissionError(err)
	}

	receipt := Receipt{CandidateID: created.ID}
	if len(created.Applications) > 0 {
		receipt.ApplicationID = created.Applications[0].ID
	}
	return receipt, nil
}

// BuildCandidateRequest maps the generic record onto the upstream candidate
// creation shape. Only the well-known question names participate; answers to
// custom questions are not representable on the candidate resource and are
// dropped here, matching the upstream contract.
func BuildCandidateRequest(jobID int64, record *Record) greenhouse.CandidateRequest {
	request := greenhouse.CandidateRequest{
		FirstName:      record.Text(question.NameFirstName),
		LastName:       record.Text(question.NameLastName),
		EmailAddresses: []greenhouse.EmailAddress{},
		Applications:   []greenhouse.ApplicationEntry{{JobID: jobID}},
		Attachments:    []greenhouse.Attachment{},
	}

	if email := record.Text(question.NameEmail); email != "" {
		request.EmailAddresses = append(request.EmailAddresses, greenhouse.EmailAddress{
			Value: email,
			Type:  "personal",
		})
	}
	if phone := record.Text(question.NamePhone); phone != "" {
		request.PhoneNumbers = []greenhouse.PhoneNumber{{Value: phone, Type: "mobile"}}
	}

	if value, ok := record.Get(question.NameResume); ok {
		if env, isFile := value.Attachment(); isFile && !env.IsZero() {
			request.Attachments = append(request.Attachments, greenhouse.Attachment{
				Filename:    env.Filename,
				Type:        attachmentTypeResume,
				Content:     env.Content,
				ContentType: env.ContentType,
			})
		}
	}

	// The cover letter arrives as free text, not an envelope; re-encode it.
	if letter := record.Text(question.NameCoverLetter); letter != "" {
		request.Attachments = append(request.Attachments, greenhouse.Attachment{
			Filename:    coverLetterFilename,
			Type:        attachmentTypeCoverLetter,
			Content:     base64.StdEncoding.EncodeToString([]byte(letter)),
			ContentType: coverLetterContentType,
		})
	}

	// Any remaining attachment-typed answers travel as generic uploads.
	for _, name := range record.Names() {
		if name == question.NameResume || name == question.NameCoverLetter {
			continue
		}
		value, _ := record.Get(name)
		if env, isFile := value.Attachment(); isFile && !env.IsZero() {
			request.Attachments = append(request.Attachments, greenhouse.Attachment{
				Filename:    env.Filename,
				Type:        attachmentTypeOther,
				Content:     env.Content,
				ContentType: env.ContentType,
			})
		}
	}

	return request
}

func asSubmissionError(err error) *SubmissionError {
	var apiErr *greenhouse.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Body
		if message == "" {
			message = fmt.Sprintf("upstream rejected the application (status %d)", apiErr.Status)
		}
		return &SubmissionError{Status: apiErr.Status, Message: message, err: err}
	}
	return &SubmissionError{Message: "could not reach the application service", err: err}
}
