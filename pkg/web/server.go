// Package web serves the public job board pages: the company listing, the job
// detail page with its application form, and the terminal confirmation page.
// Pages are rendered from embedded pongo2 templates; upstream job content is
// sanitized before it reaches the browser.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-jobboard/pkg/board"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/render"
	"github.com/goliatone/go-jobboard/pkg/render/template"
	"github.com/goliatone/go-jobboard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-jobboard/pkg/renderers/vanilla"
)

//go:embed templates
var templateFS embed.FS

// DefaultSubmitPath is where the rendered form posts unless overridden.
const DefaultSubmitPath = "/api/applications"

// Board is the read surface the pages are built from. *board.Service
// satisfies it.
type Board interface {
	GetJobs(ctx context.Context) ([]greenhouse.Job, error)
	GetJob(ctx context.Context, id string) (*board.JobView, error)
	GetCompany(ctx context.Context, slug string) (*board.Company, error)
}

// Mux is the minimal router surface the server mounts onto.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Option configures a Server.
type Option func(*Server)

// WithTemplateRenderer overrides the page template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(s *Server) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithRendererRegistry overrides the registry the form renderer is resolved
// from.
func WithRendererRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithRendererName selects which registered renderer draws the application
// form.
func WithRendererName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.rendererName = name
		}
	}
}

// WithThemeSelector enables company branding through go-theme manifests.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(s *Server) {
		if selector != nil {
			s.themes = selector
		}
	}
}

// WithCompanySlug sets the company rendered on the board.
func WithCompanySlug(slug string) Option {
	return func(s *Server) {
		s.companySlug = slug
	}
}

// WithSubmitPath sets the submission endpoint the form posts to.
func WithSubmitPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.submitPath = path
		}
	}
}

// WithSanitizer overrides the HTML sanitization policy for job content.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(s *Server) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithLogger injects the logger for render and read failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server renders the board pages.
type Server struct {
	board        Board
	engine       template.TemplateRenderer
	renderers    *render.Registry
	rendererName string
	forms        render.Renderer
	policy       *bluemonday.Policy
	themes       theme.ThemeSelector
	companySlug  string
	submitPath   string
	logger       *log.Logger
}

// New constructs a Server over the given board read surface.
func New(b Board, options ...Option) (*Server, error) {
	if b == nil {
		return nil, fmt.Errorf("web: board is required")
	}

	server := &Server{
		board:      b,
		policy:     bluemonday.UGCPolicy(),
		submitPath: DefaultSubmitPath,
		logger:     log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(server)
	}

	if server.engine == nil {
		templates, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("web: template fs: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(templates), gotemplate.WithExtension(".html"))
		if err != nil {
			return nil, fmt.Errorf("web: template engine: %w", err)
		}
		server.engine = engine
	}
	if server.renderers == nil {
		forms, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("web: form renderer: %w", err)
		}
		registry := render.NewRegistry()
		if err := registry.Register(forms); err != nil {
			return nil, fmt.Errorf("web: register form renderer: %w", err)
		}
		server.renderers = registry
	}
	if server.rendererName == "" {
		server.rendererName = "vanilla"
	}
	forms, err := server.renderers.Get(server.rendererName)
	if err != nil {
		return nil, fmt.Errorf("web: resolve form renderer: %w", err)
	}
	server.forms = forms
	return server, nil
}

// RegisterRoutes mounts the board pages on mux. The catch-all route serves the
// not-found page.
func (s *Server) RegisterRoutes(mux Mux) {
	mux.Handle("GET /{$}", http.HandlerFunc(s.handleCompany))
	mux.Handle("GET /jobs/{id}", http.HandlerFunc(s.handleJob))
	mux.Handle("GET /jobs/{id}/submitted", http.HandlerFunc(s.handleSubmitted))
	mux.Handle("/", http.HandlerFunc(s.handleNotFound))
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobs, err := s.board.GetJobs(ctx)
	if err != nil {
		s.logger.Printf("web: company page: %v", err)
		s.renderNotFound(w)
		return
	}

	company := s.company(ctx)
	groups := board.GroupJobsByDepartment(jobs)
	groupData := make([]map[string]any, 0, len(groups))
	for _, group := range groups {
		jobData := make([]map[string]any, 0, len(group.Jobs))
		for _, job := range group.Jobs {
			jobData = append(jobData, jobContext(job))
		}
		groupData = append(groupData, map[string]any{
			"name": group.Name,
			"jobs": jobData,
		})
	}

	s.renderPage(w, http.StatusOK, "company", map[string]any{
		"company":        companyContext(company),
		"branding":       s.branding(company.Theme),
		"groups":         groupData,
		"openPositions":  strconv.Itoa(len(jobs)),
		"positionsLabel": positionsLabel(len(jobs)),
	})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	view, err := s.board.GetJob(ctx, id)
	if err != nil {
		if !errors.Is(err, board.ErrNotFound) {
			s.logger.Printf("web: job page %s: %v", id, err)
		}
		s.renderNotFound(w)
		return
	}

	formHTML, err := s.forms.Render(ctx, view.Form, render.Options{
		Action: s.submitPath,
		Method: http.MethodPost,
	})
	if err != nil {
		s.logger.Printf("web: render form for job %s: %v", id, err)
		s.renderNotFound(w)
		return
	}

	company := s.company(ctx)
	s.renderPage(w, http.StatusOK, "job", map[string]any{
		"company":  companyContext(company),
		"branding": s.branding(company.Theme),
		"job":      jobContext(view.Job),
		"content":  s.policy.Sanitize(view.Content),
		"formHtml": string(formHTML),
	})
}

func (s *Server) handleSubmitted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	// Best effort: the confirmation reads fine without the job title.
	jobData := map[string]any{"id": id, "name": ""}
	if view, err := s.board.GetJob(ctx, id); err == nil {
		jobData = jobContext(view.Job)
	}

	company := s.company(ctx)
	s.renderPage(w, http.StatusOK, "submitted", map[string]any{
		"company":  companyContext(company),
		"branding": s.branding(company.Theme),
		"job":      jobData,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.renderNotFound(w)
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	company := s.company(context.Background())
	s.renderPage(w, http.StatusNotFound, "notfound", map[string]any{
		"company":  companyContext(company),
		"branding": s.branding(company.Theme),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data map[string]any) {
	out, err := s.engine.RenderTemplate(name, data)
	if err != nil {
		s.logger.Printf("web: render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, out)
}

// company resolves the configured company, degrading to a generic identity
// when the directory has no entry. The page must render either way.
func (s *Server) company(ctx context.Context) board.Company {
	if s.companySlug != "" {
		if company, err := s.board.GetCompany(ctx, s.companySlug); err == nil && company != nil {
			return *company
		}
	}
	return board.Company{Name: "Careers"}
}

func (s *Server) branding(ref string) Branding {
	name, variant := splitThemeRef(ref)
	if s.themes == nil || name == "" {
		return Branding{}
	}
	selection, err := s.themes.Select(name, variant)
	if err != nil {
		s.logger.Printf("web: theme %q: %v", ref, err)
		return Branding{}
	}
	return brandingFromSelection(selection)
}

func companyContext(company board.Company) map[string]any {
	return map[string]any{
		"slug":        company.Slug,
		"name":        company.Name,
		"description": company.Description,
		"logoUrl":     company.LogoURL,
		"websiteUrl":  company.WebsiteURL,
	}
}

// jobContext flattens a job for the templates. Numbers travel as strings so
// the template layer never formats them.
func jobContext(job greenhouse.Job) map[string]any {
	office := ""
	if len(job.Offices) > 0 {
		office = job.Offices[0].Name
	}
	employment := ""
	if job.CustomFields != nil {
		employment = job.CustomFields.EmploymentType
	}
	return map[string]any{
		"id":             strconv.FormatInt(job.ID, 10),
		"name":           job.Name,
		"office":         office,
		"employmentType": employment,
	}
}

func positionsLabel(count int) string {
	if count == 1 {
		return "1 open position"
	}
	return fmt.Sprintf("%d open positions", count)
}
