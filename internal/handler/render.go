package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/angeloszaimis/proxy-dashboard/internal/apiconfig"
	"github.com/angeloszaimis/proxy-dashboard/internal/routes"
)

var ErrUnknownComponent = errors.New("unknown component")

// Renderer turns a matched route into a response. It is the only place a
// ComponentRef is interpreted.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, match routes.Match) error
}

type routeView struct {
	Name      string            `json:"name"`
	Path      string            `json:"path"`
	Component string            `json:"component"`
	Meta      map[string]string `json:"meta"`
}

func newRouteView(route routes.Route) routeView {
	meta := route.Meta
	if meta == nil {
		meta = map[string]string{}
	}

	return routeView{
		Name:      route.Name,
		Path:      route.Path,
		Component: string(route.Component),
		Meta:      meta,
	}
}

type pageView struct {
	routeView
	Params map[string]string `json:"params"`
}

// JSONRenderer describes the matched page as JSON for a client-side shell.
type JSONRenderer struct {
	known map[routes.ComponentRef]struct{}
}

func NewJSONRenderer(components ...routes.ComponentRef) *JSONRenderer {
	known := make(map[routes.ComponentRef]struct{}, len(components))
	for _, c := range components {
		known[c] = struct{}{}
	}

	return &JSONRenderer{known: known}
}

func (jr *JSONRenderer) Render(w http.ResponseWriter, r *http.Request, match routes.Match) error {
	if _, ok := jr.known[match.Route.Component]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, match.Route.Component)
	}

	params := match.Params
	if params == nil {
		params = map[string]string{}
	}

	body, err := json.Marshal(pageView{routeView: newRouteView(match.Route), Params: params})
	if err != nil {
		return fmt.Errorf("encode page %s: %w", match.Route.Name, err)
	}

	w.Header().Set("Content-Type", apiconfig.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}

	_, err = w.Write(append(body, '\n'))
	return err
}
