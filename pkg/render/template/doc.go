// Package template defines the renderer-agnostic template engine contract the
// page server and HTML renderers program against, keeping the concrete engine
// swappable behind a narrow seam.
package template
