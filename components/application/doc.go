// Package application provides an embeddable, extraction-friendly submission
// endpoint: a POST-only JSON handler that validates required answers against a
// job's question schema and forwards the form value record to the submission
// pipeline.
package application
