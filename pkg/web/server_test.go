package web

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobboard/pkg/board"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/question"
	"github.com/goliatone/go-jobboard/pkg/render"
)

type stubBoard struct {
	jobs    []greenhouse.Job
	jobsErr error
	views   map[string]*board.JobView
	company *board.Company
}

func (b *stubBoard) GetJobs(context.Context) ([]greenhouse.Job, error) {
	return b.jobs, b.jobsErr
}

func (b *stubBoard) GetJob(_ context.Context, id string) (*board.JobView, error) {
	if view, ok := b.views[id]; ok {
		return view, nil
	}
	return nil, board.ErrNotFound
}

func (b *stubBoard) GetCompany(context.Context, string) (*board.Company, error) {
	if b.company == nil {
		return nil, board.ErrNotFound
	}
	return b.company, nil
}

func openJob(id int64, name, department, office string) greenhouse.Job {
	return greenhouse.Job{
		ID:          id,
		Name:        name,
		Status:      greenhouse.JobStatusOpen,
		Departments: []greenhouse.Department{{ID: 1, Name: department}},
		Offices:     []greenhouse.Office{{ID: 1, Name: office}},
		Openings:    []greenhouse.Opening{{ID: 1, Status: greenhouse.OpeningStatusOpen}},
	}
}

func newTestServer(t *testing.T, b Board, options ...Option) http.Handler {
	t.Helper()
	options = append(options, WithLogger(log.New(io.Discard, "", 0)))
	server, err := New(b, options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)
	return mux
}

func getPage(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, rec.Body.String()
}

func mustContain(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("expected body to contain %q\nbody:\n%s", want, body)
	}
}

func TestCompanyPageListsJobsByDepartment(t *testing.T) {
	b := &stubBoard{
		jobs: []greenhouse.Job{
			openJob(12, "Backend Engineer", "Engineering", "Berlin"),
			openJob(13, "Product Designer", "Design", "Lisbon"),
		},
		company: &board.Company{Slug: "acme", Name: "Acme", Description: "We build things."},
	}
	handler := newTestServer(t, b, WithCompanySlug("acme"))

	rec, body := getPage(t, handler, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Acme Careers")
	mustContain(t, body, "We build things.")
	mustContain(t, body, "2 open positions")
	mustContain(t, body, "<h2>Design</h2>")
	mustContain(t, body, "<h2>Engineering</h2>")
	mustContain(t, body, `<a href="/jobs/12">Backend Engineer</a>`)
	mustContain(t, body, `<span class="job-office">Berlin</span>`)
}

func TestCompanyPageWithoutDirectoryFallsBack(t *testing.T) {
	b := &stubBoard{jobs: []greenhouse.Job{openJob(12, "Backend Engineer", "Engineering", "")}}
	handler := newTestServer(t, b)

	rec, body := getPage(t, handler, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Careers")
	mustContain(t, body, "1 open position")
}

func TestCompanyPageUpstreamFailureRendersNotFound(t *testing.T) {
	b := &stubBoard{jobsErr: fmt.Errorf("upstream down")}
	handler := newTestServer(t, b)

	rec, body := getPage(t, handler, "/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Position not found")
}

func TestJobPageRendersSanitizedContentAndForm(t *testing.T) {
	job := openJob(12, "Backend Engineer", "Engineering", "Berlin")
	b := &stubBoard{
		views: map[string]*board.JobView{
			"12": {
				Job:     job,
				Form:    question.Form{JobID: "12", JobName: job.Name, Questions: question.DefaultQuestions()},
				Content: `<p>Build services.</p><script>alert("x")</script>`,
			},
		},
	}
	handler := newTestServer(t, b)

	rec, body := getPage(t, handler, "/jobs/12")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "<h1>Backend Engineer</h1>")
	mustContain(t, body, "<p>Build services.</p>")
	if strings.Contains(body, "alert(\"x\")") {
		t.Fatal("script content survived sanitization")
	}
	mustContain(t, body, `<form id="application-form" method="POST" action="/api/applications" data-job-id="12" novalidate>`)
	mustContain(t, body, `name="first_name"`)
	mustContain(t, body, `id="form-feedback"`)
}

func TestJobPageNotFound(t *testing.T) {
	handler := newTestServer(t, &stubBoard{})

	rec, body := getPage(t, handler, "/jobs/999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Position not found")
}

func TestSubmittedPage(t *testing.T) {
	job := openJob(12, "Backend Engineer", "Engineering", "")
	b := &stubBoard{
		views: map[string]*board.JobView{
			"12": {Job: job, Form: question.Form{JobID: "12"}},
		},
	}
	handler := newTestServer(t, b)

	rec, body := getPage(t, handler, "/jobs/12/submitted")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Thanks for applying!")
	mustContain(t, body, "<strong>Backend Engineer</strong>")
}

func TestSubmittedPageWithoutJobStillRenders(t *testing.T) {
	handler := newTestServer(t, &stubBoard{})

	rec, body := getPage(t, handler, "/jobs/999/submitted")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Your application has been received.")
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	handler := newTestServer(t, &stubBoard{})

	rec, body := getPage(t, handler, "/nope/really")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, "Position not found")
}

type stubFormRenderer struct {
	name string
}

func (s stubFormRenderer) Name() string        { return s.name }
func (s stubFormRenderer) ContentType() string { return "text/html" }
func (s stubFormRenderer) Render(context.Context, question.Form, render.Options) ([]byte, error) {
	return []byte(`<div id="` + s.name + `-form"></div>`), nil
}

func TestJobPageResolvesFormRendererByName(t *testing.T) {
	job := openJob(12, "Backend Engineer", "Engineering", "")
	b := &stubBoard{
		views: map[string]*board.JobView{
			"12": {Job: job, Form: question.Form{JobID: "12"}},
		},
	}
	registry := render.NewRegistry()
	registry.MustRegister(stubFormRenderer{name: "minimal"})
	handler := newTestServer(t, b,
		WithRendererRegistry(registry),
		WithRendererName("minimal"),
	)

	rec, body := getPage(t, handler, "/jobs/12")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mustContain(t, body, `<div id="minimal-form"></div>`)
}

func TestNewRejectsUnknownRendererName(t *testing.T) {
	b := &stubBoard{}
	_, err := New(b, WithRendererName("nope"), WithLogger(log.New(io.Discard, "", 0)))
	if err == nil {
		t.Fatal("expected error for unregistered renderer name")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Fatalf("error should name the missing renderer: %v", err)
	}
}

func TestCompanyBrandingEmitsCSSVars(t *testing.T) {
	b := &stubBoard{
		jobs:    []greenhouse.Job{},
		company: &board.Company{Slug: "acme", Name: "Acme", Theme: "acme"},
	}
	selector := NewManifestSelector(&theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"brand": "#123456"},
	})
	handler := newTestServer(t, b, WithCompanySlug("acme"), WithThemeSelector(selector))

	_, body := getPage(t, handler, "/")
	mustContain(t, body, "--brand:#123456;")
}
