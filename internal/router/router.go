// Package router maps URL-style paths to named views.
//
// Routes are declared once at startup. Eager routes are built by New; every
// other route's loader runs the first time it is resolved and the result is
// reused afterwards. There are no guards, redirects, nested routes or
// catch-all: an unknown path is ErrRouteNotFound.
package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrRouteNotFound is returned for paths missing from the table.
var ErrRouteNotFound = errors.New("route not found")

// Route declares one table entry.
type Route[V any] struct {
	Path  string
	Name  string
	Eager bool
	Load  func() V
}

// Match is a resolved route.
type Match[V any] struct {
	Path string
	Name string
	View V
	// Fresh is true when this resolution ran the loader.
	Fresh bool
}

type entry[V any] struct {
	route Route[V]

	mu     sync.Mutex
	view   V
	loaded bool
}

// Router resolves paths against an immutable table and keeps a navigation
// history.
type Router[V any] struct {
	entries []*entry[V]
	byPath  map[string]*entry[V]
	byName  map[string]*entry[V]

	mu      sync.Mutex
	history []string
}

// New validates routes and loads the eager ones.
func New[V any](routes []Route[V]) (*Router[V], error) {
	r := &Router[V]{
		byPath: make(map[string]*entry[V], len(routes)),
		byName: make(map[string]*entry[V], len(routes)),
	}
	for i, route := range routes {
		path := Normalize(route.Path)
		name := strings.TrimSpace(route.Name)
		switch {
		case path == "":
			return nil, fmt.Errorf("route %d: empty path", i)
		case name == "":
			return nil, fmt.Errorf("route %q: empty name", path)
		case route.Load == nil:
			return nil, fmt.Errorf("route %q: nil loader", path)
		}
		if _, dup := r.byPath[path]; dup {
			return nil, fmt.Errorf("route %q: duplicate path", path)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("route %q: duplicate name %q", path, name)
		}
		route.Path = path
		route.Name = name
		e := &entry[V]{route: route}
		r.entries = append(r.entries, e)
		r.byPath[path] = e
		r.byName[name] = e
	}
	for _, e := range r.entries {
		if e.route.Eager {
			e.load()
		}
	}
	return r, nil
}

// load runs the loader at most once; fresh reports whether this call ran it.
func (e *entry[V]) load() (view V, fresh bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		e.view = e.route.Load()
		e.loaded = true
		fresh = true
	}
	return e.view, fresh
}

func (e *entry[V]) isLoaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Resolve returns the route for path, loading its view if needed.
func (r *Router[V]) Resolve(path string) (Match[V], error) {
	e, ok := r.byPath[Normalize(path)]
	if !ok {
		return Match[V]{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}
	view, fresh := e.load()
	return Match[V]{Path: e.route.Path, Name: e.route.Name, View: view, Fresh: fresh}, nil
}

// ResolveName resolves a route by its name.
func (r *Router[V]) ResolveName(name string) (Match[V], error) {
	e, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return Match[V]{}, fmt.Errorf("%w: name %s", ErrRouteNotFound, name)
	}
	return r.Resolve(e.route.Path)
}

// Navigate resolves path and pushes it onto the history.
func (r *Router[V]) Navigate(path string) (Match[V], error) {
	m, err := r.Resolve(path)
	if err != nil {
		return Match[V]{}, err
	}
	r.mu.Lock()
	r.history = append(r.history, m.Path)
	r.mu.Unlock()
	return m, nil
}

// Back pops the current entry and resolves the previous one. ok is false
// when there is nothing to go back to.
func (r *Router[V]) Back() (Match[V], bool) {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return Match[V]{}, false
	}
	r.history = r.history[:len(r.history)-1]
	prev := r.history[len(r.history)-1]
	r.mu.Unlock()

	m, err := r.Resolve(prev)
	if err != nil {
		return Match[V]{}, false
	}
	return m, true
}

// Current returns the path on top of the history.
func (r *Router[V]) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return "", false
	}
	return r.history[len(r.history)-1], true
}

// Loaded reports whether the named route's view has been built.
func (r *Router[V]) Loaded(name string) bool {
	e, ok := r.byName[name]
	if !ok {
		return false
	}
	return e.isLoaded()
}

// Routes returns the table in declaration order.
func (r *Router[V]) Routes() []Route[V] {
	out := make([]Route[V], 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.route)
	}
	return out
}

// Normalize trims whitespace, a "#" prefix from hash-style URLs, query
// strings and trailing slashes, and ensures a leading slash.
func Normalize(path string) string {
	p := strings.TrimSpace(path)
	p = strings.TrimPrefix(p, "#")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
