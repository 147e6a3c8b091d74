package tui

import (
	"fmt"
	"net/url"
	"strings"
)

// RouteName identifies a screen
type RouteName string

const (
	RouteHome    RouteName = "home"
	RouteSearch  RouteName = "search"
	RouteProfile RouteName = "profile"
)

// Route parameter keys
const (
	ParamQuery = "query"
	ParamID    = "id"
)

// Route is one entry of the navigation stack
type Route struct {
	Name   RouteName
	Path   string
	Params map[string]string
}

// Query returns the search text of a search route
func (r Route) Query() string { return r.Params[ParamQuery] }

// ID returns the profile ID of a profile route
func (r Route) ID() string { return r.Params[ParamID] }

// ParseRoute resolves a path: "/" or "/home", "/search/{query}", "/profile/{id}"
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" || trimmed == string(RouteHome) {
		return Route{Name: RouteHome, Path: "/home", Params: map[string]string{}}, nil
	}

	name, rest, _ := strings.Cut(trimmed, "/")
	value, err := url.PathUnescape(rest)
	if err != nil {
		return Route{}, fmt.Errorf("invalid route %q: %w", path, err)
	}
	if value == "" {
		return Route{}, fmt.Errorf("invalid route %q: missing parameter", path)
	}

	var r Route
	switch RouteName(name) {
	case RouteSearch:
		r = Route{Name: RouteSearch, Params: map[string]string{ParamQuery: value}}
	case RouteProfile:
		r = Route{Name: RouteProfile, Params: map[string]string{ParamID: value}}
	default:
		return Route{}, fmt.Errorf("unknown route %q", path)
	}
	r.Path = buildPath(r.Name, r.Params)
	return r, nil
}

// SearchPath returns the path of the search screen for query
func SearchPath(query string) string {
	return buildPath(RouteSearch, map[string]string{ParamQuery: query})
}

// ProfilePath returns the path of a profile screen
func ProfilePath(id string) string {
	return buildPath(RouteProfile, map[string]string{ParamID: id})
}

func buildPath(name RouteName, params map[string]string) string {
	switch name {
	case RouteSearch:
		return "/search/" + url.PathEscape(params[ParamQuery])
	case RouteProfile:
		return "/profile/" + url.PathEscape(params[ParamID])
	default:
		return "/home"
	}
}

// Router is the navigation stack. The root route is never popped.
type Router struct {
	stack []Route
}

// NewRouter creates a router positioned on the home screen
func NewRouter() *Router {
	home, _ := ParseRoute("/home")
	return &Router{stack: []Route{home}}
}

// Current returns the route on top of the stack
func (r *Router) Current() Route {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of routes on the stack
func (r *Router) Depth() int {
	return len(r.stack)
}

// Push navigates to path
func (r *Router) Push(path string) error {
	route, err := ParseRoute(path)
	if err != nil {
		return err
	}
	r.stack = append(r.stack, route)
	return nil
}

// SetParams updates the parameters of the current route in place
func (r *Router) SetParams(params map[string]string) {
	top := &r.stack[len(r.stack)-1]
	merged := make(map[string]string, len(top.Params)+len(params))
	for k, v := range top.Params {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	top.Params = merged
	top.Path = buildPath(top.Name, merged)
}

// Back pops the current route. It reports false at the root.
func (r *Router) Back() bool {
	if len(r.stack) <= 1 {
		return false
	}
	r.stack = r.stack[:len(r.stack)-1]
	return true
}
