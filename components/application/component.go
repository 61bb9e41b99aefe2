package application

import "net/http"

// Component bundles pre-built options so the endpoint can be constructed once
// and mounted in several places.
type Component struct {
	fns []OptionFn
}

// New builds a Component from the given options.
func New(fns ...OptionFn) *Component {
	return &Component{fns: fns}
}

// Options resolves the component's effective options.
func (c *Component) Options() Options {
	return NewOptions(c.fns...)
}

// Handler returns the component's HTTP handler.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.fns...)
}

// RegisterRoutes mounts the component on mux under basePath.
func (c *Component) RegisterRoutes(mux Mux, basePath string) {
	RegisterRoutesWithOptions(mux, basePath, c.fns...)
}

// MountPath reports the route the component registers under basePath.
func (c *Component) MountPath(basePath string) string {
	return MountPath(basePath, c.fns...)
}
