package greenhouse

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when the upstream API reports 404 for a resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("greenhouse: %s not found", e.Resource)
	}
	return fmt.Sprintf("greenhouse: %s %s not found", e.Resource, e.ID)
}

// APIError is returned for any non-2xx upstream response that is not a 404.
// Body carries the raw upstream error text when one was readable.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("greenhouse: upstream status %d", e.Status)
	}
	return fmt.Sprintf("greenhouse: upstream status %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
