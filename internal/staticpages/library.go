// Package staticpages serves markdown files with YAML frontmatter as
// pre-rendered routes. Static routes sit outside the CMS and win over
// CMS pages on the same path.
package staticpages

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/frontmatter"
	"github.com/freightwave/go-sitecms/internal/logging"
	"github.com/freightwave/go-sitecms/internal/render"
	"github.com/freightwave/go-sitecms/internal/router"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
)

// Meta is the frontmatter block of one static page file.
type Meta struct {
	Title       string `yaml:"title"`
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// Page is one loaded static page.
type Page struct {
	Path        string
	Title       string
	Description string
	HTML        []byte
	Source      string
}

// Library holds the loaded static pages keyed by canonical path.
type Library struct {
	logger   interfaces.Logger
	markdown *render.Markdown

	mu    sync.RWMutex
	pages map[string]*Page
}

// Option configures the library.
type Option func(*Library)

// WithLogger attaches a structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New constructs an empty library.
func New(opts ...Option) *Library {
	l := &Library{
		logger:   logging.NoOp(),
		markdown: render.NewMarkdown(),
		pages:    make(map[string]*Page),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load walks fsys for files matching pattern (a path.Match glob applied
// to the base name, e.g. "*.md"), parses frontmatter and renders the
// markdown body. Draft pages are skipped. Load replaces the current set.
func (l *Library) Load(fsys fs.FS, pattern string) error {
	if pattern == "" {
		pattern = "*.md"
	}

	loaded := make(map[string]*Page)
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		matched, matchErr := path.Match(pattern, path.Base(name))
		if matchErr != nil {
			return matchErr
		}
		if !matched {
			return nil
		}

		page, loadErr := l.loadFile(fsys, name)
		if loadErr != nil {
			return fmt.Errorf("static page %s: %w", name, loadErr)
		}
		if page == nil {
			return nil
		}
		if existing, ok := loaded[page.Path]; ok {
			return fmt.Errorf("static page %s: path %s already served by %s", name, page.Path, existing.Source)
		}
		loaded[page.Path] = page
		return nil
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.pages = loaded
	l.mu.Unlock()

	l.logger.Info("static pages loaded", "count", len(loaded))
	return nil
}

func (l *Library) loadFile(fsys fs.FS, name string) (*Page, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Draft {
		l.logger.Debug("skipping draft static page", "file", name)
		return nil, nil
	}

	pagePath := meta.Path
	if strings.TrimSpace(pagePath) == "" {
		pagePath = "/" + strings.TrimSuffix(name, path.Ext(name))
	}
	normalized, err := sitepages.NormalizePath(pagePath)
	if err != nil {
		return nil, err
	}

	html, err := l.markdown.Render(body)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = path.Base(normalized)
	}

	return &Page{
		Path:        normalized,
		Title:       title,
		Description: strings.TrimSpace(meta.Description),
		HTML:        html,
		Source:      name,
	}, nil
}

// Lookup returns the static page for a canonical path.
func (l *Library) Lookup(pagePath string) (*Page, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	page, ok := l.pages[pagePath]
	return page, ok
}

// Pages lists every loaded page ordered by path.
func (l *Library) Pages() []*Page {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Page, 0, len(l.pages))
	for _, page := range l.pages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// RouteLookup adapts the library to the router's static lookup contract.
func (l *Library) RouteLookup(pagePath string) (router.Route, bool) {
	page, ok := l.Lookup(pagePath)
	if !ok {
		return router.Route{}, false
	}
	return router.Route{
		Kind:       router.RouteKindStatic,
		Path:       page.Path,
		Title:      page.Title,
		StaticHTML: page.HTML,
	}, true
}
