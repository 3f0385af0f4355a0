package server

import (
	"net/http"
	"strings"
)

type RouteDoc struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Group       string `json:"group,omitempty"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

// RouteRegistry collects route docs for the admin page and routes.json.
type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.routes = append(rr.routes, doc)
}

func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// Groups returns the distinct route groups in registration order.
func (rr *RouteRegistry) Groups() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, d := range rr.routes {
		if d.Group == "" || seen[d.Group] {
			continue
		}
		seen[d.Group] = true
		out = append(out, d.Group)
	}
	return out
}

// Handle registers a documented route. methodAndPattern follows the
// "GET /api/x" mux convention.
func Handle(mux *http.ServeMux, rr *RouteRegistry, group, methodAndPattern, summary, exampleBody string, h http.HandlerFunc) {
	parts := strings.SplitN(methodAndPattern, " ", 2)
	method, pattern := parts[0], ""
	if len(parts) == 2 {
		pattern = parts[1]
	}
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Group: group, Summary: summary, ExampleBody: exampleBody})
	mux.HandleFunc(methodAndPattern, h)
}
