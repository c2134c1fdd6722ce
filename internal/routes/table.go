package routes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicatePath = errors.New("duplicate route path")
	ErrDuplicateName = errors.New("duplicate route name")
	ErrNoRoutes      = errors.New("route table is empty")
)

type entry struct {
	route    Route
	segments []string
}

// Table is an ordered, validated, read-only set of routes.
type Table struct {
	entries []entry
	byName  map[string]int
}

// New validates rs and builds a table preserving their order. Every
// violation is reported, not only the first.
func New(rs ...Route) (*Table, error) {
	if len(rs) == 0 {
		return nil, ErrNoRoutes
	}

	var errs []error
	t := &Table{
		entries: make([]entry, 0, len(rs)),
		byName:  make(map[string]int, len(rs)),
	}
	paths := make(map[string]string, len(rs))

	for i, r := range rs {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("route %d (%q): %w", i, r.Name, err))
			continue
		}

		key := shape(r.Path)
		if other, exists := paths[key]; exists {
			errs = append(errs, fmt.Errorf("%w: %q conflicts with route %q", ErrDuplicatePath, r.Path, other))
		} else {
			paths[key] = r.Name
		}

		if _, exists := t.byName[r.Name]; exists {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, r.Name))
			continue
		}

		t.byName[r.Name] = len(t.entries)
		t.entries = append(t.entries, entry{route: r.clone(), segments: splitPath(r.Path)})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return t, nil
}

// List returns the routes in declaration order.
func (t *Table) List() []Route {
	out := make([]Route, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.route.clone()
	}

	return out
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Lookup(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}

	return t.entries[i].route.clone(), true
}

// Match resolves a location path to the first route that matches it.
// Query strings must already be stripped.
func (t *Table) Match(path string) (Match, bool) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	location := splitPath(path)

	for _, e := range t.entries {
		if params, ok := matchSegments(e.segments, location); ok {
			return Match{Route: e.route.clone(), Params: params}, true
		}
	}

	return Match{}, false
}
