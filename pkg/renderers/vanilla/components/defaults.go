package components

import (
	"bytes"
	"html"
	"strings"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// controls used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{Renderer: inputRenderer})
	registry.MustRegister(NameTextarea, Descriptor{Renderer: textareaRenderer})
	registry.MustRegister(NameSelect, Descriptor{Renderer: selectRenderer})
	registry.MustRegister(NameFile, Descriptor{Renderer: fileRenderer})

	return registry
}

func inputRenderer(buf *bytes.Buffer, field Field) error {
	inputType := field.Attr("type")
	if inputType == "" {
		inputType = "text"
	}

	var builder strings.Builder
	builder.WriteString(`<input type="`)
	builder.WriteString(html.EscapeString(inputType))
	builder.WriteString(`"`)
	writeIdentity(&builder, field)
	if field.Value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(field.Value))
		builder.WriteString(`"`)
	}
	writeValidation(&builder, field)
	builder.WriteString(`>`)

	buf.WriteString(builder.String())
	return nil
}

func textareaRenderer(buf *bytes.Buffer, field Field) error {
	rows := field.Attr("rows")
	if rows == "" {
		rows = "4"
	}

	var builder strings.Builder
	builder.WriteString(`<textarea`)
	writeIdentity(&builder, field)
	builder.WriteString(` rows="`)
	builder.WriteString(html.EscapeString(rows))
	builder.WriteString(`"`)
	writeValidation(&builder, field)
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(field.Value))
	builder.WriteString(`</textarea>`)

	buf.WriteString(builder.String())
	return nil
}

func selectRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	builder.WriteString(`<select`)
	writeIdentity(&builder, field)
	if field.Attr("multiple") == "true" {
		builder.WriteString(` multiple`)
	}
	writeValidation(&builder, field)
	builder.WriteString(`>`)

	if field.Attr("multiple") != "true" {
		builder.WriteString(`<option value="">Select...</option>`)
	}
	for _, option := range field.Question.Values {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if field.Value != "" && field.Value == option.Value {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		label := option.Label
		if label == "" {
			label = option.Value
		}
		builder.WriteString(html.EscapeString(label))
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)

	buf.WriteString(builder.String())
	return nil
}

func fileRenderer(buf *bytes.Buffer, field Field) error {
	var builder strings.Builder
	builder.WriteString(`<input type="file"`)
	writeIdentity(&builder, field)
	if accept := field.Attr("accept"); accept != "" {
		builder.WriteString(` accept="`)
		builder.WriteString(html.EscapeString(accept))
		builder.WriteString(`"`)
	}
	writeValidation(&builder, field)
	builder.WriteString(`>`)

	buf.WriteString(builder.String())
	return nil
}

func writeIdentity(builder *strings.Builder, field Field) {
	name := strings.TrimSpace(field.Question.Name)
	builder.WriteString(` id="`)
	builder.WriteString(html.EscapeString(ControlID(name)))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`"`)
}

func writeValidation(builder *strings.Builder, field Field) {
	if field.Question.Required {
		builder.WriteString(` required`)
	}
	if len(field.Errors) > 0 {
		builder.WriteString(` aria-invalid="true"`)
	}
}

// ControlID derives the DOM id for a question's control.
func ControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "q-" + trimmed
}
