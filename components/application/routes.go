package application

import (
	"net/http"
	"strings"
)

// Mux is the minimal router surface needed to mount the component. Both
// *http.ServeMux and most third party routers satisfy it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the submission endpoint on mux under basePath using
// default options.
func RegisterRoutes(mux Mux, basePath string) {
	RegisterRoutesWithOptions(mux, basePath)
}

// RegisterRoutesWithOptions mounts the submission endpoint on mux under
// basePath with the given options applied.
func RegisterRoutesWithOptions(mux Mux, basePath string, fns ...OptionFn) {
	opts := NewOptions(fns...)
	mux.Handle(mountPath(basePath, opts.RoutePath), &handler{opts: opts})
}

// MountPath returns the full route the component would register for the
// given base path and options.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

func mountPath(basePath, routePath string) string {
	base := strings.TrimSuffix(strings.TrimSpace(basePath), "/")
	route := strings.TrimSpace(routePath)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if base == "" {
		return route
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base + route
}
