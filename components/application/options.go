package application

import (
	"context"
	"log"
	"net/http"

	app "github.com/goliatone/go-jobboard/pkg/application"
	"github.com/goliatone/go-jobboard/pkg/question"
)

// GuardFunc can reject a request before it is processed. Returning an error
// implementing HTTPError controls the status code.
type GuardFunc func(r *http.Request) error

// Submitter forwards a validated record to the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, jobID string, record *app.Record) (app.Receipt, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, jobID string, record *app.Record) (app.Receipt, error)

func (f SubmitterFunc) Submit(ctx context.Context, jobID string, record *app.Record) (app.Receipt, error) {
	return f(ctx, jobID, record)
}

// SchemaResolver resolves the normalized question schema for a job so the
// handler can check required answers before submitting.
type SchemaResolver interface {
	Schema(ctx context.Context, jobID string) (question.Form, error)
}

// SchemaResolverFunc adapts a function to the SchemaResolver interface.
type SchemaResolverFunc func(ctx context.Context, jobID string) (question.Form, error)

func (f SchemaResolverFunc) Schema(ctx context.Context, jobID string) (question.Form, error) {
	return f(ctx, jobID)
}

// Options configure the submission endpoint.
type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	Submitter    Submitter
	Schemas      SchemaResolver
	Logger       *log.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/applications",
		// Attachments travel base64-encoded inside the JSON body.
		MaxBodyBytes: 16 << 20,
		Logger:       log.Default(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/applications"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 16 << 20
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSubmitter(submitter Submitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submitter = submitter
	}
}

func WithSchemaResolver(resolver SchemaResolver) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Schemas = resolver
	}
}

func WithLogger(logger *log.Logger) OptionFn {
	return func(o *Options) {
		if o == nil || logger == nil {
			return
		}
		o.Logger = logger
	}
}
