// Package router resolves client-side view paths and gates them on the
// current session.
package router

import (
	"fmt"
	"strings"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
)

// Well-known paths.
const (
	PathRoot         = "/"
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathNotFound     = "/not-found"
	PathDashboard    = "/dashboard"
)

// Route binds a path pattern to a view. Pattern segments starting with ':'
// capture a parameter.
type Route struct {
	Pattern   string
	View      string
	Protected bool
	// Roles restricts a protected route. Empty means any authenticated user.
	Roles []domainauth.Role
}

// Principal is what the router knows about the caller.
type Principal struct {
	Token string
	Role  domainauth.Role
}

// Authenticated reports whether a token is present.
func (p Principal) Authenticated() bool { return p.Token != "" }

// Decision is the outcome of resolving a path. When Redirect is set the
// caller must navigate there instead of rendering Route.
type Decision struct {
	Route    Route
	Params   map[string]string
	Redirect string
}

// Allowed reports whether the route may be rendered.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Router matches paths against an ordered route table. The first match wins.
type Router struct {
	routes   []compiled
	notFound Route
}

type compiled struct {
	route    Route
	segments []string
}

// New builds a router from routes. It returns an error for an invalid or
// duplicate pattern.
func New(routes []Route) (*Router, error) {
	r := &Router{notFound: Route{Pattern: PathNotFound, View: "not-found"}}
	seen := make(map[string]bool, len(routes))
	for _, rt := range routes {
		if !strings.HasPrefix(rt.Pattern, "/") {
			return nil, fmt.Errorf("router: pattern %q must start with /", rt.Pattern)
		}
		key := shape(rt.Pattern)
		if seen[key] {
			return nil, fmt.Errorf("router: duplicate pattern %q", rt.Pattern)
		}
		seen[key] = true
		r.routes = append(r.routes, compiled{route: rt, segments: split(rt.Pattern)})
	}
	return r, nil
}

// MustNew is New that panics on error.
func MustNew(routes []Route) *Router {
	r, err := New(routes)
	if err != nil {
		panic(err)
	}
	return r
}

// Routes returns the route table in match order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	for i, c := range r.routes {
		out[i] = c.route
	}
	return out
}

// Resolve maps path to a view for p.
//
// The root redirects to the dashboard. An unknown path resolves to the
// not-found view. A protected route redirects to the login page without a
// token and to the unauthorized page when the role is not allowed.
func (r *Router) Resolve(path string, p Principal) Decision {
	path = clean(path)
	if path == PathRoot {
		return Decision{Redirect: PathDashboard}
	}
	for _, c := range r.routes {
		params, ok := match(c.segments, split(path))
		if !ok {
			continue
		}
		d := Decision{Route: c.route, Params: params}
		switch {
		case !c.route.Protected:
		case !p.Authenticated():
			d.Redirect = PathLogin
		case !p.Role.In(c.route.Roles...):
			d.Redirect = PathUnauthorized
		}
		return d
	}
	return Decision{Route: r.notFound, Params: map[string]string{}}
}

func clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// shape normalizes parameter names so "/a/:id" and "/a/:key" collide.
func shape(pattern string) string {
	segs := split(pattern)
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = ":"
		}
	}
	return "/" + strings.Join(segs, "/")
}

func match(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pattern {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if path[i] == "" {
				return nil, false
			}
			params[name] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}
