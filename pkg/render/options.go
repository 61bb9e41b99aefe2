package render

import (
	"strings"
)

// Options describe per-request data renderers can use to customise their
// output without mutating the form schema.
type Options struct {
	// Action is the submission endpoint the rendered form targets.
	Action string
	// Method overrides the HTTP method the form declares. Defaults to POST.
	Method string
	// Values pre-populates rendered controls keyed by question name.
	Values map[string]string
	// Errors surfaces server-side validation feedback keyed by question name.
	// Messages under unknown names are treated as form-level.
	Errors map[string][]string
	// Hidden adds hidden inputs emitted alongside the visible questions.
	Hidden map[string]string
	// OmitShell suppresses the surrounding <form> element so the output can be
	// embedded into a page that supplies its own.
	OmitShell bool
}

// Value returns the pre-populated value for a question name, or "".
func (o Options) Value(name string) string {
	if o.Values == nil {
		return ""
	}
	return o.Values[name]
}

// FieldErrors returns the normalized error messages attached to name.
func (o Options) FieldErrors(name string) []string {
	if o.Errors == nil {
		return nil
	}
	return NormalizeMessages(o.Errors[name])
}

// NormalizeMessages trims whitespace and removes empty or duplicate messages
// while preserving order.
func NormalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// MergeFormErrors concatenates and normalises form-level error messages.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return NormalizeMessages(combined)
}
