package router

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLBuilder produces absolute public URLs for page paths through a
// go-urlkit route manager. The canonical link tag and the sitemap use it.
type URLBuilder struct {
	manager      *urlkit.RouteManager
	defaultGroup string
	pageRoute    string
	pathParam    string

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

// URLBuilderOptions configures the builder.
type URLBuilderOptions struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	PageRoute    string
	PathParam    string
}

// NewURLBuilder constructs the builder.
func NewURLBuilder(opts URLBuilderOptions) *URLBuilder {
	if opts.DefaultGroup == "" {
		opts.DefaultGroup = "site"
	}
	if opts.PageRoute == "" {
		opts.PageRoute = "page"
	}
	if opts.PathParam == "" {
		opts.PathParam = "path"
	}
	return &URLBuilder{
		manager:      opts.Manager,
		defaultGroup: opts.DefaultGroup,
		pageRoute:    opts.PageRoute,
		pathParam:    opts.PathParam,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// PageURL builds the absolute URL for a canonical page path.
func (b *URLBuilder) PageURL(path string) (string, error) {
	if b == nil || b.manager == nil {
		return "", fmt.Errorf("router: url manager not configured")
	}

	group, err := b.group(b.defaultGroup)
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, b.pageRoute)
	if err != nil {
		return "", err
	}

	value := strings.TrimPrefix(path, "/")
	return builder.WithParam(b.pathParam, value).Build()
}

func (b *URLBuilder) group(name string) (*urlkit.Group, error) {
	b.mu.RLock()
	group, ok := b.groupCache[name]
	b.mu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := lookupGroup(b.manager, name)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.groupCache[name] = group
	b.mu.Unlock()
	return group, nil
}

// go-urlkit panics on unknown groups and routes; recover converts that
// into an error the caller can handle.
func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("router: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("router: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("router: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("router: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
