// Package question defines the canonical application-form schema the
// renderers consume, plus the adapter that normalizes upstream job payloads
// into it. The adapter is a pure transformation: it performs no I/O and
// supplies deterministic fallbacks when upstream data is incomplete.
package question

// Type is the closed enumeration of form-friendly question kinds.
type Type string

const (
	TypeShortText    Type = "short_text"
	TypeLongText     Type = "long_text"
	TypeAttachment   Type = "attachment"
	TypeSingleSelect Type = "single_select"
	TypeMultiSelect  Type = "multi_select"
	TypeYesNo        Type = "yes_no"
)

// Well-known question names that receive special rendering and submission
// treatment, resolved before generic type dispatch.
const (
	NameFirstName   = "first_name"
	NameLastName    = "last_name"
	NameEmail       = "email"
	NamePhone       = "phone"
	NameResume      = "resume"
	NameCoverLetter = "cover_letter"
)

// Option is one enumerated choice of a select-type question. Value is always
// a string; numeric upstream values are coerced during normalization.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question describes one application-form field. Name is the stable key,
// unique within a schema; Values is empty for non-select types.
type Question struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        Type     `json:"type"`
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
	Values      []Option `json:"values,omitempty"`
}

// IsSelect reports whether the question presents enumerated choices.
func (q Question) IsSelect() bool {
	return q.Type == TypeSingleSelect || q.Type == TypeMultiSelect
}

// Form is the canonical schema handed to renderers: a job identity plus its
// ordered question sequence.
type Form struct {
	JobID     string     `json:"jobId"`
	JobName   string     `json:"jobName,omitempty"`
	Questions []Question `json:"questions"`
}

// Question looks up a question by name.
func (f Form) Question(name string) (Question, bool) {
	for _, q := range f.Questions {
		if q.Name == name {
			return q, true
		}
	}
	return Question{}, false
}

// RequiredNames returns the names of all required questions in schema order.
func (f Form) RequiredNames() []string {
	var names []string
	for _, q := range f.Questions {
		if q.Required {
			names = append(names, q.Name)
		}
	}
	return names
}
