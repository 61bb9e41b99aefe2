package vanilla

import (
	"github.com/goliatone/go-jobboard/pkg/question"
	"github.com/goliatone/go-jobboard/pkg/renderers/vanilla/components"
)

// componentSpec is the dispatch result for one question: the component to
// render it with plus control attribute overrides.
type componentSpec struct {
	component string
	attrs     map[string]string
}

// nameOverrides maps well-known question names onto their controls. Name
// dispatch runs before type dispatch so an upstream schema that tags "email"
// as plain short_text still gets the email input.
var nameOverrides = map[string]componentSpec{
	question.NameEmail:       {component: components.NameInput, attrs: map[string]string{"type": "email"}},
	question.NamePhone:       {component: components.NameInput, attrs: map[string]string{"type": "tel"}},
	question.NameCoverLetter: {component: components.NameTextarea, attrs: map[string]string{"rows": "6"}},
	question.NameResume:      {component: components.NameFile, attrs: map[string]string{"accept": ".pdf,.doc,.docx"}},
}

// yesNoValues is the synthesized choice list for yes_no questions.
var yesNoValues = []question.Option{
	{Value: "Yes", Label: "Yes"},
	{Value: "No", Label: "No"},
}

// resolve picks the component for a question. It may return an adjusted copy
// of the question (yes_no questions get their choices synthesized here).
func resolve(q question.Question) (componentSpec, question.Question) {
	if spec, ok := nameOverrides[q.Name]; ok {
		return spec, q
	}

	switch q.Type {
	case question.TypeLongText:
		return componentSpec{component: components.NameTextarea, attrs: map[string]string{"rows": "4"}}, q
	case question.TypeAttachment:
		return componentSpec{component: components.NameFile}, q
	case question.TypeSingleSelect:
		return componentSpec{component: components.NameSelect}, q
	case question.TypeMultiSelect:
		return componentSpec{component: components.NameSelect, attrs: map[string]string{"multiple": "true"}}, q
	case question.TypeYesNo:
		q.Values = yesNoValues
		return componentSpec{component: components.NameSelect}, q
	default:
		// short_text and anything unrecognized degrade to a text input.
		return componentSpec{component: components.NameInput, attrs: map[string]string{"type": "text"}}, q
	}
}
