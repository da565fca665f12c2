// Package route resolves application paths to views.
package route

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/khanglvm/dev-tools-hub/internal/registry"
)

// Kind identifies which view a path renders.
type Kind string

const (
	KindHome     Kind = "home"
	KindTool     Kind = "tool"
	KindHistory  Kind = "history"
	KindNotFound Kind = "not-found"
)

// Query parameters accepted on any route.
const (
	ParamEmbedded    = "embedded"
	ParamHideSidebar = "hideSidebar"
	ParamHideHeader  = "hideHeader"
)

// View is the resolved state for a path.
type View struct {
	Kind     Kind   `json:"kind"`
	Path     string `json:"path"`
	ToolID   string `json:"toolId,omitempty"`
	ToolName string `json:"toolName,omitempty"`

	Embedded    bool `json:"embedded"`
	HideSidebar bool `json:"hideSidebar"`
	HideHeader  bool `json:"hideHeader"`

	// ShowSidebar is true only on tool and history views that are not
	// hiding it.
	ShowSidebar bool `json:"showSidebar"`
}

// Resolver maps paths to views against a registry.
type Resolver struct {
	registry *registry.Registry
}

// NewResolver creates a resolver for reg.
func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{registry: reg}
}

// Resolve parses raw, which may carry a query string, into a View. Unknown
// paths and unknown tool ids resolve to KindNotFound rather than an error.
func (r *Resolver) Resolve(raw string) View {
	u, err := url.Parse(raw)
	if err != nil {
		return View{Kind: KindNotFound, Path: raw}
	}

	path := "/" + strings.Trim(u.Path, "/")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	q := u.Query()

	v := View{
		Path:        path,
		Embedded:    flag(q, ParamEmbedded),
		HideSidebar: flag(q, ParamHideSidebar),
		HideHeader:  flag(q, ParamHideHeader),
	}

	switch {
	case path == "/":
		v.Kind = KindHome
	case path == "/history":
		v.Kind = KindHistory
	case len(segments) == 2 && segments[0] == "tool":
		r.tool(&v, segments[1])
	case len(segments) == 3 && segments[0] == "embed" && segments[1] == "tool":
		v.Embedded, v.HideSidebar, v.HideHeader = true, true, true
		r.tool(&v, segments[2])
	default:
		v.Kind = KindNotFound
	}

	v.ShowSidebar = (v.Kind == KindTool || v.Kind == KindHistory) && !v.HideSidebar
	return v
}

func (r *Resolver) tool(v *View, id string) {
	d, ok := r.registry.Get(id)
	if !ok {
		v.Kind = KindNotFound
		v.ToolID = id
		return
	}
	v.Kind = KindTool
	v.ToolID = d.ID
	v.ToolName = d.Name
}

// flag reports whether a query parameter is exactly "true".
func flag(q url.Values, name string) bool {
	return q.Get(name) == "true"
}

// ToolPath builds the path for a tool view.
func ToolPath(id string, embedded bool) string {
	if embedded {
		return fmt.Sprintf("/embed/tool/%s", url.PathEscape(id))
	}
	return fmt.Sprintf("/tool/%s", url.PathEscape(id))
}
