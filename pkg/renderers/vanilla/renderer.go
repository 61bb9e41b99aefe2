// Package vanilla renders a question form as dependency-free HTML. Well-known
// question names resolve to specialised controls before type dispatch, so the
// default schema and upstream custom schemas share one code path.
package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-jobboard/pkg/question"
	"github.com/goliatone/go-jobboard/pkg/render"
	"github.com/goliatone/go-jobboard/pkg/renderers/vanilla/components"
)

// FormID is the DOM id of the rendered form element; the submission runtime
// locates the form through it.
const FormID = "application-form"

// Option configures the renderer.
type Option func(*Renderer)

// WithRegistry swaps the component registry, letting callers override or add
// controls.
func WithRegistry(registry *components.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// Renderer emits HTML for a question form. Safe for concurrent use.
type Renderer struct {
	registry *components.Registry
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	renderer := &Renderer{registry: components.NewDefaultRegistry()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(renderer)
	}
	return renderer, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup. Unless options.OmitShell is set the output
// is wrapped in a <form> carrying the job id and submission action, ready for
// the client runtime to take over.
func (r *Renderer) Render(_ context.Context, form question.Form, options render.Options) ([]byte, error) {
	var builder strings.Builder
	builder.Grow(2048)

	if !options.OmitShell {
		r.openShell(&builder, form, options)
	}

	for _, field := range formErrors(form, options) {
		builder.WriteString(`<p class="form-error" role="alert">`)
		builder.WriteString(html.EscapeString(field))
		builder.WriteString("</p>\n")
	}

	for _, q := range form.Questions {
		markup, err := r.renderQuestion(q, options)
		if err != nil {
			return nil, err
		}
		builder.WriteString(markup)
	}

	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		builder.WriteString(`<input type="hidden" name="`)
		builder.WriteString(html.EscapeString(hidden.Name))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(hidden.Value))
		builder.WriteString("\">\n")
	}

	if !options.OmitShell {
		builder.WriteString(`<button type="submit" class="form-submit">Submit Application</button>` + "\n")
		builder.WriteString("</form>\n")
	}

	return []byte(builder.String()), nil
}

func (r *Renderer) openShell(builder *strings.Builder, form question.Form, options render.Options) {
	method := options.Method
	if method == "" {
		method = "POST"
	}

	builder.WriteString(`<form id="` + FormID + `" method="`)
	builder.WriteString(html.EscapeString(method))
	builder.WriteString(`"`)
	if options.Action != "" {
		builder.WriteString(` action="`)
		builder.WriteString(html.EscapeString(options.Action))
		builder.WriteString(`"`)
	}
	if form.JobID != "" {
		builder.WriteString(` data-job-id="`)
		builder.WriteString(html.EscapeString(form.JobID))
		builder.WriteString(`"`)
	}
	builder.WriteString(` novalidate>` + "\n")
}

func (r *Renderer) renderQuestion(q question.Question, options render.Options) (string, error) {
	spec, resolved := resolve(q)

	descriptor, ok := r.registry.Descriptor(spec.component)
	if !ok {
		return "", fmt.Errorf("vanilla: component %q not registered for question %q", spec.component, q.Name)
	}

	field := components.Field{
		Question: resolved,
		Value:    options.Value(q.Name),
		Attrs:    spec.attrs,
		Errors:   options.FieldErrors(q.Name),
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field); err != nil {
		return "", fmt.Errorf("vanilla: render component %q for question %q: %w", spec.component, q.Name, err)
	}

	return buildFieldMarkup(field, spec.component, control.String()), nil
}

// buildFieldMarkup wraps a control with its chrome: label, description, and
// validation messages.
func buildFieldMarkup(field components.Field, componentName, control string) string {
	q := field.Question

	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="form-field" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString(`" data-question-type="`)
	builder.WriteString(html.EscapeString(string(q.Type)))
	builder.WriteString(`">` + "\n")

	if strings.TrimSpace(q.Label) != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(components.ControlID(q.Name)))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(q.Label))
		if q.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	if control != "" {
		builder.WriteString("    ")
		builder.WriteString(control)
		builder.WriteByte('\n')
	}

	if desc := strings.TrimSpace(q.Description); desc != "" {
		builder.WriteString(`    <small class="form-help">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString("</small>\n")
	}

	for _, message := range field.Errors {
		builder.WriteString(`    <small class="form-field-error">`)
		builder.WriteString(html.EscapeString(message))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

// formErrors collects messages keyed by names that do not belong to any
// question; they render at form level so feedback is never dropped.
func formErrors(form question.Form, options render.Options) []string {
	if len(options.Errors) == 0 {
		return nil
	}
	names := make([]string, 0, len(options.Errors))
	for name := range options.Errors {
		if _, known := form.Question(name); known {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		messages = append(messages, options.Errors[name]...)
	}
	return render.MergeFormErrors(nil, messages...)
}
