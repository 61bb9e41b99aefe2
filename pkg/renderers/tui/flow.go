package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-jobboard/pkg/application"
	"github.com/goliatone/go-jobboard/pkg/question"
)

// Option configures a Flow.
type Option func(*Flow)

// WithPromptDriver overrides the prompt driver used by the flow.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Flow) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithFileOpener overrides how attachment paths are resolved to contents,
// mainly for tests.
func WithFileOpener(open func(path string) (application.Envelope, error)) Option {
	return func(f *Flow) {
		if open != nil {
			f.openFile = open
		}
	}
}

// Flow walks a question form in order, prompting for each answer and
// accumulating them into a form value record. Optional questions answered
// with an empty response stay absent from the record.
type Flow struct {
	driver   PromptDriver
	openFile func(path string) (application.Envelope, error)
}

// NewFlow constructs a Flow with the survey driver by default.
func NewFlow(options ...Option) *Flow {
	flow := &Flow{
		driver:   newSurveyDriver(),
		openFile: envelopeFromPath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(flow)
	}
	return flow
}

// Run prompts for every question and returns the collected record.
func (f *Flow) Run(ctx context.Context, form question.Form) (*application.Record, error) {
	if f.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	record := application.NewRecord()
	for _, q := range form.Questions {
		if err := f.promptQuestion(ctx, q, record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (f *Flow) promptQuestion(ctx context.Context, q question.Question, record *application.Record) error {
	switch q.Name {
	case question.NameEmail:
		return f.promptText(ctx, q, record, validateEmail)
	case question.NameCoverLetter:
		return f.promptTextArea(ctx, q, record)
	case question.NameResume:
		return f.promptAttachment(ctx, q, record)
	}

	switch q.Type {
	case question.TypeLongText:
		return f.promptTextArea(ctx, q, record)
	case question.TypeAttachment:
		return f.promptAttachment(ctx, q, record)
	case question.TypeSingleSelect:
		return f.promptSelect(ctx, q, record)
	case question.TypeMultiSelect:
		return f.promptMultiSelect(ctx, q, record)
	case question.TypeYesNo:
		return f.promptYesNo(ctx, q, record)
	default:
		return f.promptText(ctx, q, record, nil)
	}
}

func (f *Flow) promptText(ctx context.Context, q question.Question, record *application.Record, validate func(string) error) error {
	for {
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: promptLabel(q),
			Help:    q.Description,
		})
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)

		if answer == "" {
			if q.Required {
				if err := f.driver.Info(ctx, fmt.Sprintf("%s is required", promptLabel(q))); err != nil {
					return err
				}
				continue
			}
			return nil
		}
		if validate != nil {
			if err := validate(answer); err != nil {
				if err := f.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", q.Name, err)); err != nil {
					return err
				}
				continue
			}
		}

		record.SetText(q.Name, answer)
		return nil
	}
}

func (f *Flow) promptTextArea(ctx context.Context, q question.Question, record *application.Record) error {
	for {
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: promptLabel(q),
			Help:    q.Description,
		})
		if err != nil {
			return err
		}

		if strings.TrimSpace(answer) == "" {
			if q.Required {
				if err := f.driver.Info(ctx, fmt.Sprintf("%s is required", promptLabel(q))); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		record.SetText(q.Name, answer)
		return nil
	}
}

func (f *Flow) promptAttachment(ctx context.Context, q question.Question, record *application.Record) error {
	for {
		path, err := f.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (file path)", promptLabel(q)),
			Help:    q.Description,
		})
		if err != nil {
			return err
		}
		path = strings.TrimSpace(path)

		if path == "" {
			if q.Required {
				if err := f.driver.Info(ctx, fmt.Sprintf("%s is required", promptLabel(q))); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		token := record.BeginAttachment(q.Name)
		env, err := f.openFile(path)
		if err != nil {
			if err := f.driver.Info(ctx, fmt.Sprintf("Could not read %s: %v", path, err)); err != nil {
				return err
			}
			continue
		}
		token.Commit(env)
		return nil
	}
}

func (f *Flow) promptSelect(ctx context.Context, q question.Question, record *application.Record) error {
	options := optionLabels(q.Values)
	for {
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      promptLabel(q),
			Options:      options,
			DefaultIndex: -1,
			Help:         q.Description,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(q.Values) {
			if q.Required {
				if err := f.driver.Info(ctx, fmt.Sprintf("%s is required", promptLabel(q))); err != nil {
					return err
				}
				continue
			}
			return nil
		}
		record.SetText(q.Name, q.Values[idx].Value)
		return nil
	}
}

func (f *Flow) promptMultiSelect(ctx context.Context, q question.Question, record *application.Record) error {
	options := optionLabels(q.Values)
	for {
		indices, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message: promptLabel(q),
			Options: options,
			Help:    q.Description,
		})
		if err != nil {
			return err
		}
		if len(indices) == 0 {
			if q.Required {
				if err := f.driver.Info(ctx, fmt.Sprintf("%s is required", promptLabel(q))); err != nil {
					return err
				}
				continue
			}
			return nil
		}

		values := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(q.Values) {
				values = append(values, q.Values[idx].Value)
			}
		}
		record.SetText(q.Name, strings.Join(values, ", "))
		return nil
	}
}

func (f *Flow) promptYesNo(ctx context.Context, q question.Question, record *application.Record) error {
	answer, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: promptLabel(q),
		Help:    q.Description,
	})
	if err != nil {
		return err
	}
	if answer {
		record.SetText(q.Name, "Yes")
	} else {
		record.SetText(q.Name, "No")
	}
	return nil
}

func promptLabel(q question.Question) string {
	if q.Label != "" {
		return q.Label
	}
	return q.Name
}

func optionLabels(options []question.Option) []string {
	out := make([]string, len(options))
	for i, option := range options {
		if option.Label != "" {
			out[i] = option.Label
		} else {
			out[i] = option.Value
		}
	}
	return out
}

func validateEmail(value string) error {
	if _, err := mail.ParseAddress(value); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

// envelopeFromPath reads a local file into an attachment envelope, guessing
// the content type from the extension.
func envelopeFromPath(path string) (application.Envelope, error) {
	file, err := os.Open(path)
	if err != nil {
		return application.Envelope{}, err
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return application.NewEnvelope(filepath.Base(path), contentType, file)
}
