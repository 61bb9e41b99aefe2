// Package render defines the renderer contract the presentation surfaces
// share: anything that can turn a question form into bytes, plus the registry
// they are discovered through.
package render

import (
	"context"

	"github.com/goliatone/go-jobboard/pkg/question"
)

// Renderer converts a question form into a byte representation (HTML, plain
// text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form question.Form, options Options) ([]byte, error)
}
