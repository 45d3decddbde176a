// Package router maps public request paths to renderable routes. Page
// routes come from the pages store, static routes from the markdown
// library; anything else resolves to the not-found route.
package router

import (
	"github.com/google/uuid"
)

// RouteKind classifies a resolved route.
type RouteKind int

const (
	// RouteKindNotFound renders the not-found view. Match never fails;
	// unknown paths resolve here.
	RouteKindNotFound RouteKind = iota
	// RouteKindPage renders a CMS-managed page through its component.
	RouteKindPage
	// RouteKindStatic renders a pre-rendered markdown page.
	RouteKindStatic
)

// Route is the resolution result for one request path.
type Route struct {
	Kind         RouteKind
	Path         string
	ComponentKey string
	Title        string
	PageID       uuid.UUID
	StaticHTML   []byte
}

// StaticLookup resolves a path against the static page library.
type StaticLookup func(path string) (Route, bool)
