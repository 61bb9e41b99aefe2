package question

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-jobboard/pkg/greenhouse"
)

// Upstream type tags that differ from the canonical enumeration.
const (
	upstreamSingleSelect = "multi_value_single_select"
	upstreamMultiSelect  = "multi_value_multi_select"
)

// NormalizeType maps an upstream question type tag onto the canonical
// enumeration. Unknown tags pass through unchanged so the renderer's fallback
// branch can handle them.
func NormalizeType(raw string) Type {
	switch strings.TrimSpace(raw) {
	case upstreamSingleSelect:
		return TypeSingleSelect
	case upstreamMultiSelect:
		return TypeMultiSelect
	default:
		return Type(strings.TrimSpace(raw))
	}
}

// Normalize produces the canonical form schema and display content for an
// upstream job record. Private questions are dropped, duplicate names keep
// the first occurrence, and missing content/questions receive the documented
// fallbacks.
func Normalize(job greenhouse.Job) (Form, string) {
	form := Form{
		JobID:     strconv.FormatInt(job.ID, 10),
		JobName:   job.Name,
		Questions: normalizeQuestions(job.Questions),
	}
	if len(form.Questions) == 0 {
		form.Questions = DefaultQuestions()
	}

	content := strings.TrimSpace(job.Content)
	if content == "" {
		content = DefaultContent(job.Name, firstDepartment(job), firstOffice(job))
	}
	return form, content
}

func normalizeQuestions(raw []greenhouse.Question) []Question {
	if len(raw) == 0 {
		return nil
	}

	out := make([]Question, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, upstream := range raw {
		if upstream.Private {
			continue
		}
		name := strings.TrimSpace(upstream.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		q := Question{
			Name:     name,
			Label:    upstream.Label,
			Type:     NormalizeType(upstream.Type),
			Required: upstream.Required != nil && *upstream.Required,
		}
		if upstream.Description != nil {
			q.Description = strings.TrimSpace(*upstream.Description)
		}
		if q.IsSelect() {
			q.Values = normalizeValues(upstream.Values)
		}
		out = append(out, q)
	}
	return out
}

func normalizeValues(raw []greenhouse.QuestionValue) []Option {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Option, 0, len(raw))
	for _, value := range raw {
		out = append(out, Option{
			Value: coerceValue(value.Value),
			Label: value.Label,
		})
	}
	return out
}

// coerceValue stringifies upstream option values. JSON numbers arrive as
// float64; integral ones must not grow a trailing ".0".
func coerceValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func firstDepartment(job greenhouse.Job) string {
	if len(job.Departments) == 0 {
		return ""
	}
	return job.Departments[0].Name
}

func firstOffice(job greenhouse.Job) string {
	if len(job.Offices) == 0 {
		return ""
	}
	return job.Offices[0].Name
}
