package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobboard/pkg/application"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/question"
)

type fakeAPI struct {
	jobs     []greenhouse.Job
	jobsErr  error
	job      *greenhouse.Job
	jobErr   error
	posts    []greenhouse.JobPost
	postsErr error
	user     *greenhouse.User
	userErr  error
}

func (f *fakeAPI) ListJobs(context.Context) ([]greenhouse.Job, error) {
	return f.jobs, f.jobsErr
}

func (f *fakeAPI) GetJob(context.Context, string) (*greenhouse.Job, error) {
	return f.job, f.jobErr
}

func (f *fakeAPI) ListJobPosts(context.Context, string, bool) ([]greenhouse.JobPost, error) {
	return f.posts, f.postsErr
}

func (f *fakeAPI) GetUser(context.Context, string) (*greenhouse.User, error) {
	return f.user, f.userErr
}

func openJob(id int64, name string, departments ...string) greenhouse.Job {
	job := greenhouse.Job{
		ID:       id,
		Name:     name,
		Status:   greenhouse.JobStatusOpen,
		Openings: []greenhouse.Opening{{ID: id * 10, Status: greenhouse.OpeningStatusOpen}},
	}
	for i, dept := range departments {
		job.Departments = append(job.Departments, greenhouse.Department{ID: int64(i + 1), Name: dept})
	}
	return job
}

func quietService(t *testing.T, api JobAPI, options ...Option) *Service {
	t.Helper()
	options = append(options, WithLogger(log.New(io.Discard, "", 0)))
	service, err := New(api, options...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestGetJobs_FiltersToPubliclyVisible(t *testing.T) {
	confidential := openJob(2, "Secret Role")
	confidential.Confidential = true

	closed := openJob(3, "Closed Role")
	closed.Status = "closed"

	filled := openJob(4, "Filled Role")
	filled.Openings[0].Status = "closed"

	api := &fakeAPI{jobs: []greenhouse.Job{openJob(1, "Engineer"), confidential, closed, filled}}
	service := quietService(t, api)

	jobs, err := service.GetJobs(context.Background())
	if err != nil {
		t.Fatalf("get jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != 1 {
		t.Fatalf("unexpected visible jobs: %#v", jobs)
	}
}

func TestGetJob_IneligibleJobsAreNotFound(t *testing.T) {
	tests := []struct {
		name string
		job  greenhouse.Job
	}{
		{"confidential", func() greenhouse.Job { j := openJob(1, "X"); j.Confidential = true; return j }()},
		{"closed", func() greenhouse.Job { j := openJob(1, "X"); j.Status = "closed"; return j }()},
		{"no open opening", func() greenhouse.Job { j := openJob(1, "X"); j.Openings = nil; return j }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := quietService(t, &fakeAPI{job: &tt.job})
			if _, err := service.GetJob(context.Background(), "1"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestGetJob_UpstreamNotFoundMapsToErrNotFound(t *testing.T) {
	service := quietService(t, &fakeAPI{jobErr: &greenhouse.NotFoundError{Resource: "job", ID: "9"}})
	if _, err := service.GetJob(context.Background(), "9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetJob_OverlayPrefersFirstActivePost(t *testing.T) {
	job := openJob(42, "Engineer")
	api := &fakeAPI{
		job: &job,
		posts: []greenhouse.JobPost{
			{ID: 1, Active: false, Content: "<p>stale</p>"},
			{ID: 2, Active: true, Content: "<p>live</p>"},
			{ID: 3, Active: true, Content: "<p>later</p>"},
		},
	}
	service := quietService(t, api)

	view, err := service.GetJob(context.Background(), "42")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if view.Content != "<p>live</p>" {
		t.Fatalf("overlay content mismatch: %q", view.Content)
	}
}

func TestGetJob_OverlayFallsBackToFirstPost(t *testing.T) {
	job := openJob(42, "Engineer")
	api := &fakeAPI{
		job:   &job,
		posts: []greenhouse.JobPost{{ID: 1, Content: "<p>first</p>"}, {ID: 2, Content: "<p>second</p>"}},
	}
	service := quietService(t, api)

	view, err := service.GetJob(context.Background(), "42")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if view.Content != "<p>first</p>" {
		t.Fatalf("overlay content mismatch: %q", view.Content)
	}
}

func TestGetJob_OverlayFailureDegradesToDefaults(t *testing.T) {
	job := openJob(42, "Engineer")
	api := &fakeAPI{job: &job, postsErr: fmt.Errorf("upstream down")}
	service := quietService(t, api)

	view, err := service.GetJob(context.Background(), "42")
	if err != nil {
		t.Fatalf("overlay failure must not propagate: %v", err)
	}
	if diff := cmp.Diff(question.DefaultQuestions(), view.Form.Questions); diff != "" {
		t.Fatalf("expected default schema (-want +got):\n%s", diff)
	}
	if view.Content == "" {
		t.Fatal("expected synthesized content")
	}
}

func TestGetJob_OverlayQuestionsReachTheForm(t *testing.T) {
	job := openJob(42, "Engineer")
	required := true
	api := &fakeAPI{
		job: &job,
		posts: []greenhouse.JobPost{{
			ID:     1,
			Active: true,
			Questions: []greenhouse.Question{
				{Name: "first_name", Label: "First Name", Type: "short_text", Required: &required},
			},
		}},
	}
	service := quietService(t, api)

	view, err := service.GetJob(context.Background(), "42")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if len(view.Form.Questions) != 1 || view.Form.Questions[0].Name != "first_name" {
		t.Fatalf("overlay questions lost: %#v", view.Form.Questions)
	}
}

func TestGetCompany(t *testing.T) {
	directory := NewStaticDirectory(Company{Slug: "acme", Name: "Acme Inc"})
	service := quietService(t, &fakeAPI{}, WithDirectory(directory))

	company, err := service.GetCompany(context.Background(), "acme")
	if err != nil {
		t.Fatalf("get company: %v", err)
	}
	if company.Name != "Acme Inc" {
		t.Fatalf("unexpected company: %#v", company)
	}

	if _, err := service.GetCompany(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCurrentUser_SwallowsFailures(t *testing.T) {
	service := quietService(t, &fakeAPI{userErr: fmt.Errorf("boom")}, WithUserID("7"))
	if user := service.GetCurrentUser(context.Background()); user != nil {
		t.Fatalf("expected nil user on failure, got %#v", user)
	}

	service = quietService(t, &fakeAPI{user: &greenhouse.User{ID: 7, Name: "Ada"}}, WithUserID("7"))
	user := service.GetCurrentUser(context.Background())
	if user == nil || user.Name != "Ada" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

type fakeSubmitter struct {
	jobID   string
	receipt application.Receipt
}

func (f *fakeSubmitter) Submit(_ context.Context, jobID string, _ *application.Record) (application.Receipt, error) {
	f.jobID = jobID
	return f.receipt, nil
}

func TestSubmitApplication_Delegates(t *testing.T) {
	submitter := &fakeSubmitter{receipt: application.Receipt{CandidateID: 5}}
	service := quietService(t, &fakeAPI{}, WithSubmitter(submitter))

	receipt, err := service.SubmitApplication(context.Background(), "42", application.NewRecord())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.CandidateID != 5 || submitter.jobID != "42" {
		t.Fatalf("delegation mismatch: %#v jobID=%q", receipt, submitter.jobID)
	}
}

func TestGroupJobsByDepartment(t *testing.T) {
	jobs := []greenhouse.Job{
		openJob(1, "SRE", "Engineering"),
		openJob(2, "Recruiter"),
		openJob(3, "Backend", "Engineering"),
		openJob(4, "Designer", "Design"),
	}

	groups := GroupJobsByDepartment(jobs)

	var names []string
	for _, group := range groups {
		names = append(names, group.Name)
	}
	if diff := cmp.Diff([]string{"Design", "Engineering", "Other"}, names); diff != "" {
		t.Fatalf("group order mismatch (-want +got):\n%s", diff)
	}

	engineering := groups[1]
	if len(engineering.Jobs) != 2 || engineering.Jobs[0].ID != 1 || engineering.Jobs[1].ID != 3 {
		t.Fatalf("input order not preserved: %#v", engineering.Jobs)
	}
}
