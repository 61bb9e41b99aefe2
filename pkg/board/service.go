// Package board is the service layer between the upstream recruiting API and
// the presentation surfaces. It decides which jobs are publicly visible,
// enriches job records with their posts overlay, and hands submissions to the
// application pipeline.
package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/goliatone/go-jobboard/pkg/application"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/question"
)

// ErrNotFound marks a job or company that is absent or not publicly listable.
var ErrNotFound = errors.New("board: not found")

// FallbackDepartmentName groups jobs that carry no department of their own.
const FallbackDepartmentName = "Other"

// JobAPI is the read surface of the upstream client the service depends on.
// *greenhouse.Client satisfies it.
type JobAPI interface {
	ListJobs(ctx context.Context) ([]greenhouse.Job, error)
	GetJob(ctx context.Context, id string) (*greenhouse.Job, error)
	ListJobPosts(ctx context.Context, jobID string, fullContent bool) ([]greenhouse.JobPost, error)
	GetUser(ctx context.Context, id string) (*greenhouse.User, error)
}

// Submitter forwards a completed form value record upstream.
// *application.Pipeline satisfies it.
type Submitter interface {
	Submit(ctx context.Context, jobID string, record *application.Record) (application.Receipt, error)
}

// JobView is a job prepared for presentation: the upstream record, its
// normalized form schema, and the display content after overlay and fallbacks.
type JobView struct {
	Job     greenhouse.Job
	Form    question.Form
	Content string
}

// DepartmentGroup is one department heading on the company page with the jobs
// listed under it.
type DepartmentGroup struct {
	Name string
	Jobs []greenhouse.Job
}

// Option configures a Service.
type Option func(*Service)

// WithLogger injects the logger used for best-effort failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDirectory injects the company directory.
func WithDirectory(directory CompanyDirectory) Option {
	return func(s *Service) {
		if directory != nil {
			s.directory = directory
		}
	}
}

// WithSubmitter injects the submission pipeline.
func WithSubmitter(submitter Submitter) Option {
	return func(s *Service) {
		if submitter != nil {
			s.submitter = submitter
		}
	}
}

// WithUserID sets the upstream user resolved by GetCurrentUser.
func WithUserID(id string) Option {
	return func(s *Service) {
		s.userID = id
	}
}

// Service answers the presentation layer's questions about jobs, companies,
// and submissions. Safe for concurrent use.
type Service struct {
	api       JobAPI
	directory CompanyDirectory
	submitter Submitter
	logger    *log.Logger
	userID    string
}

// New constructs a Service over the given upstream API.
func New(api JobAPI, options ...Option) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("board: job api is required")
	}
	service := &Service{
		api:    api,
		logger: log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(service)
	}
	return service, nil
}

// GetJobs returns the publicly visible jobs: open, not confidential, with at
// least one open opening.
func (s *Service) GetJobs(ctx context.Context) ([]greenhouse.Job, error) {
	jobs, err := s.api.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("board: list jobs: %w", err)
	}

	visible := make([]greenhouse.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.PubliclyVisible() {
			visible = append(visible, job)
		}
	}
	return visible, nil
}

// GetJob returns the presentation view of one job. Jobs that are absent,
// confidential, closed, or without an open opening all surface as ErrNotFound;
// the distinction is deliberately not exposed.
func (s *Service) GetJob(ctx context.Context, id string) (*JobView, error) {
	job, err := s.api.GetJob(ctx, id)
	if err != nil {
		if greenhouse.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("board: get job %s: %w", id, err)
	}
	if !job.PubliclyVisible() {
		return nil, ErrNotFound
	}

	s.applyPostOverlay(ctx, id, job)

	form, content := question.Normalize(*job)
	return &JobView{Job: *job, Form: form, Content: content}, nil
}

// applyPostOverlay enriches the job with its posts overlay when one exists.
// The overlay is best effort: fetch failures are logged and the job record is
// served as-is.
func (s *Service) applyPostOverlay(ctx context.Context, id string, job *greenhouse.Job) {
	posts, err := s.api.ListJobPosts(ctx, id, true)
	if err != nil {
		s.logger.Printf("board: job posts overlay for job %s: %v", id, err)
		return
	}
	post := pickPost(posts)
	if post == nil {
		return
	}
	if post.Content != "" {
		job.Content = post.Content
	}
	if len(post.Questions) > 0 {
		job.Questions = post.Questions
	}
}

// pickPost selects the overlay post: the first active one wins, else the
// first post of any state.
func pickPost(posts []greenhouse.JobPost) *greenhouse.JobPost {
	if len(posts) == 0 {
		return nil
	}
	for i := range posts {
		if posts[i].Active {
			return &posts[i]
		}
	}
	return &posts[0]
}

// GetCompany resolves a company by slug through the configured directory.
func (s *Service) GetCompany(ctx context.Context, slug string) (*Company, error) {
	if s.directory == nil {
		return nil, ErrNotFound
	}
	return s.directory.Company(ctx, slug)
}

// GetCurrentUser resolves the configured upstream identity. Failures are
// swallowed: the board renders fine without a user, so a nil result simply
// means "unknown".
func (s *Service) GetCurrentUser(ctx context.Context) *greenhouse.User {
	if s.userID == "" {
		return nil
	}
	user, err := s.api.GetUser(ctx, s.userID)
	if err != nil {
		s.logger.Printf("board: current user %s: %v", s.userID, err)
		return nil
	}
	return user
}

// SubmitApplication forwards the record to the submission pipeline.
func (s *Service) SubmitApplication(ctx context.Context, jobID string, record *application.Record) (application.Receipt, error) {
	if s.submitter == nil {
		return application.Receipt{}, fmt.Errorf("board: no submission pipeline configured")
	}
	return s.submitter.Submit(ctx, jobID, record)
}

// GroupJobsByDepartment buckets jobs under their first department, sorted by
// department name with the fallback group last. Job order within a group
// follows the input.
func GroupJobsByDepartment(jobs []greenhouse.Job) []DepartmentGroup {
	buckets := make(map[string][]greenhouse.Job)
	for _, job := range jobs {
		name := FallbackDepartmentName
		if len(job.Departments) > 0 && job.Departments[0].Name != "" {
			name = job.Departments[0].Name
		}
		buckets[name] = append(buckets[name], job)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		if name == FallbackDepartmentName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := buckets[FallbackDepartmentName]; ok {
		names = append(names, FallbackDepartmentName)
	}

	groups := make([]DepartmentGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, DepartmentGroup{Name: name, Jobs: buckets[name]})
	}
	return groups
}
