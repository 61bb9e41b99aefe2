// Package application models a single in-progress job application: the form
// value record accumulated while a candidate edits the dynamic form, the
// base64 attachment envelope used to carry files inside JSON, and the
// submission pipeline that maps the record onto the upstream candidate shape.
package application

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Envelope is the JSON-safe wrapper for one uploaded file. It is built
// atomically from a completed read; a partially constructed envelope never
// exists.
type Envelope struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// NewEnvelope reads r to completion and returns an envelope carrying the
// base64-encoded bytes.
func NewEnvelope(filename, contentType string, r io.Reader) (Envelope, error) {
	if strings.TrimSpace(filename) == "" {
		return Envelope{}, fmt.Errorf("application: envelope filename is required")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Envelope{}, fmt.Errorf("application: read attachment %q: %w", filename, err)
	}
	return Envelope{
		Filename:    filename,
		Content:     base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}, nil
}

// Decode returns the original bytes of the envelope content.
func (e Envelope) Decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(e.Content)
	if err != nil {
		return nil, fmt.Errorf("application: decode attachment %q: %w", e.Filename, err)
	}
	return data, nil
}

// IsZero reports whether the envelope carries no file.
func (e Envelope) IsZero() bool {
	return e.Filename == "" && e.Content == "" && e.ContentType == ""
}
