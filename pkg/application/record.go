package application

import (
	"encoding/json"
	"fmt"
	"sort"
)

type valueKind int

const (
	kindText valueKind = iota + 1
	kindAttachment
)

// Value is a tagged union: either free text or an attachment envelope. The
// zero Value means "no value", distinct from Text("").
type Value struct {
	kind       valueKind
	text       string
	attachment Envelope
}

// Text wraps a plain string answer.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// File wraps an attachment envelope answer.
func File(env Envelope) Value {
	return Value{kind: kindAttachment, attachment: env}
}

// Text returns the string answer when the value is textual.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == kindText
}

// Attachment returns the envelope when the value is a file.
func (v Value) Attachment() (Envelope, bool) {
	return v.attachment, v.kind == kindAttachment
}

// IsZero reports whether the value is unset.
func (v Value) IsZero() bool {
	return v.kind == 0
}

// Empty reports whether the value is unset, empty text, or an empty envelope.
func (v Value) Empty() bool {
	switch v.kind {
	case kindText:
		return v.text == ""
	case kindAttachment:
		return v.attachment.IsZero()
	default:
		return true
	}
}

// Record is the form value record for one application session: a mapping from
// question name to a tagged value. An absent key means "unanswered", which is
// deliberately distinct from an explicit empty string.
//
// Record is owned by a single form session and is not safe for concurrent
// mutation.
type Record struct {
	values map[string]Value
	seqs   map[string]uint64
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{
		values: make(map[string]Value),
		seqs:   make(map[string]uint64),
	}
}

// SetText installs a textual answer for name, replacing any prior value.
func (r *Record) SetText(name, text string) {
	r.ensure()
	r.values[name] = Text(text)
}

// Set installs an arbitrary value for name. Zero values are ignored; use
// Clear to remove an answer.
func (r *Record) Set(name string, value Value) {
	if value.IsZero() {
		return
	}
	r.ensure()
	r.values[name] = value
}

// Clear removes the entry for name entirely so the record reflects "no value
// provided". It also invalidates any pending attachment read for the field.
func (r *Record) Clear(name string) {
	if r.values == nil {
		return
	}
	delete(r.values, name)
	r.seqs[name]++
}

// Get returns the value for name and whether one is present.
func (r *Record) Get(name string) (Value, bool) {
	value, ok := r.values[name]
	return value, ok
}

// Text returns the textual answer for name, or "" when absent or non-textual.
func (r *Record) Text(name string) string {
	if value, ok := r.values[name]; ok {
		if text, isText := value.Text(); isText {
			return text
		}
	}
	return ""
}

// Len reports how many answers are present.
func (r *Record) Len() int {
	return len(r.values)
}

// Names returns the answered question names in sorted order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasAnswer reports whether name carries a present, non-empty value.
func (r *Record) HasAnswer(name string) bool {
	value, ok := r.values[name]
	return ok && !value.Empty()
}

// AttachmentToken represents one in-flight file read for a field. A token
// commits its envelope only while it is still the newest selection for that
// field, so a stale completed read can never overwrite a newer one.
type AttachmentToken struct {
	record *Record
	name   string
	seq    uint64
}

// BeginAttachment registers a new file selection for name and returns the
// token the eventual read completion must commit through. Starting a new
// selection supersedes every earlier token for the same field.
func (r *Record) BeginAttachment(name string) *AttachmentToken {
	r.ensure()
	r.seqs[name]++
	return &AttachmentToken{record: r, name: name, seq: r.seqs[name]}
}

// Commit installs the envelope if the token is still current. It reports
// whether the record was updated.
func (t *AttachmentToken) Commit(env Envelope) bool {
	if t == nil || t.record == nil {
		return false
	}
	if t.record.seqs[t.name] != t.seq {
		return false
	}
	t.record.values[t.name] = File(env)
	return true
}

func (r *Record) ensure() {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if r.seqs == nil {
		r.seqs = make(map[string]uint64)
	}
}

// MarshalJSON renders the record as the flat object the submission endpoint
// accepts: strings for text answers, envelope objects for attachments.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.values))
	for name, value := range r.values {
		if text, ok := value.Text(); ok {
			out[name] = text
			continue
		}
		if env, ok := value.Attachment(); ok {
			out[name] = env
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the flat wire object: string values become text
// answers, objects carrying filename/content become envelopes. Null entries
// are dropped, preserving the absent-key semantics.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("application: decode record: %w", err)
	}

	r.values = make(map[string]Value, len(raw))
	r.seqs = make(map[string]uint64)

	for name, payload := range raw {
		if string(payload) == "null" {
			continue
		}
		var text string
		if err := json.Unmarshal(payload, &text); err == nil {
			r.values[name] = Text(text)
			continue
		}
		var env Envelope
		if err := json.Unmarshal(payload, &env); err == nil && !env.IsZero() {
			r.values[name] = File(env)
			continue
		}
		return fmt.Errorf("application: field %q: expected string or attachment envelope", name)
	}
	return nil
}
