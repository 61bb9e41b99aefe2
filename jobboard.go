// Package jobboard assembles the job board building blocks into a running
// stack: the upstream client, the submission pipeline, the board service, the
// page server, and the submission endpoint.
package jobboard

import (
	"context"
	"fmt"
	"net/http"

	appcomponent "github.com/goliatone/go-jobboard/components/application"
	"github.com/goliatone/go-jobboard/pkg/application"
	"github.com/goliatone/go-jobboard/pkg/board"
	"github.com/goliatone/go-jobboard/pkg/config"
	"github.com/goliatone/go-jobboard/pkg/greenhouse"
	"github.com/goliatone/go-jobboard/pkg/question"
	"github.com/goliatone/go-jobboard/pkg/web"
)

// Commonly used types re-exported for callers that only import this package.
type (
	Config  = config.Config
	Company = board.Company
	Job     = greenhouse.Job
	Form    = question.Form
	Record  = application.Record
	Receipt = application.Receipt
)

// Stack is a fully wired job board.
type Stack struct {
	Client   *greenhouse.Client
	Pipeline *application.Pipeline
	Board    *board.Service
	Web      *web.Server
}

// New wires a Stack from the given configuration. Web options let callers
// customise the page server (theme selector, renderers).
func New(cfg Config, options ...web.Option) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := greenhouse.New(cfg.Greenhouse.APIKey, cfg.Greenhouse.UserID,
		greenhouse.WithBaseURL(cfg.Greenhouse.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("jobboard: client: %w", err)
	}

	pipeline, err := application.NewPipeline(client)
	if err != nil {
		return nil, fmt.Errorf("jobboard: pipeline: %w", err)
	}

	service, err := board.New(client,
		board.WithDirectory(board.NewStaticDirectory(cfg.Company)),
		board.WithSubmitter(pipeline),
		board.WithUserID(cfg.Greenhouse.UserID),
	)
	if err != nil {
		return nil, fmt.Errorf("jobboard: board: %w", err)
	}

	options = append([]web.Option{web.WithCompanySlug(cfg.Company.Slug)}, options...)
	pages, err := web.New(service, options...)
	if err != nil {
		return nil, fmt.Errorf("jobboard: web: %w", err)
	}

	return &Stack{
		Client:   client,
		Pipeline: pipeline,
		Board:    service,
		Web:      pages,
	}, nil
}

// RegisterRoutes mounts the pages and the submission endpoint on mux.
func (s *Stack) RegisterRoutes(mux *http.ServeMux) {
	appcomponent.RegisterRoutesWithOptions(mux, "",
		appcomponent.WithSubmitter(s.Pipeline),
		appcomponent.WithSchemaResolver(appcomponent.SchemaResolverFunc(
			func(ctx context.Context, jobID string) (question.Form, error) {
				view, err := s.Board.GetJob(ctx, jobID)
				if err != nil {
					return question.Form{}, err
				}
				return view.Form, nil
			})),
	)
	s.Web.RegisterRoutes(mux)
}

// Handler returns a mux with the full stack mounted.
func (s *Stack) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}
