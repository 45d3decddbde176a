// Package render turns resolved routes into HTML documents: section
// payloads through markdown, head state through the seo tag set, the
// whole page through one layout template.
package render

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/logging"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
	siteseo "github.com/freightwave/go-sitecms/seo"
)

// SectionView is one renderable section.
type SectionView struct {
	Key      string
	Title    string
	BodyHTML template.HTML
	Images   map[string]string
	Fields   []Field
}

// Field is a generic content entry rendered when a section carries no
// recognized body.
type Field struct {
	Label string
	Value string
}

// PageView is everything the layout template needs for one response.
type PageView struct {
	Title        string
	Path         string
	ComponentKey string
	HeadHTML     template.HTML
	Header       *siteheaders.Content
	Sections     []SectionView
	Locations    []*sitelocations.Location
	StaticHTML   template.HTML
	NotFound     bool
}

// Renderer assembles page views and writes them as HTML.
type Renderer struct {
	markdown *Markdown
	layout   *template.Template
	logger   interfaces.Logger
}

// RendererOption configures the renderer.
type RendererOption func(*Renderer)

// WithLogger attaches a structured logger.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs the renderer with the embedded layout.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("render: parse layout: %w", err)
	}

	r := &Renderer{
		markdown: NewMarkdown(),
		layout:   layout,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// HeadHTML resolves head state for metadata through the tag set so the
// emitted fragment carries exactly one tag per key.
func (r *Renderer) HeadHTML(meta siteseo.Metadata) template.HTML {
	tags := siteseo.NewTagSet()
	tags.Apply(meta)
	return template.HTML(tags.RenderHead())
}

// SectionViews converts stored sections into renderable views in the
// order given. The reserved seo section must be partitioned out by the
// caller before rendering.
func (r *Renderer) SectionViews(sections []*sitecontent.Section) []SectionView {
	out := make([]SectionView, 0, len(sections))
	for _, section := range sections {
		if section == nil {
			continue
		}
		out = append(out, r.sectionView(section))
	}
	return out
}

func (r *Renderer) sectionView(section *sitecontent.Section) SectionView {
	view := SectionView{
		Key:    sitecontent.NormalizeSectionKey(section.SectionKey),
		Images: section.Images,
	}
	if title, ok := section.Content["title"].(string); ok {
		view.Title = title
	}

	// markdown wins over raw html when both are present
	if body, ok := section.Content["markdown"].(string); ok && body != "" {
		rendered, err := r.markdown.Render([]byte(body))
		if err != nil {
			r.logger.Error("markdown render failed", "section_key", view.Key, "error", err)
		} else {
			view.BodyHTML = template.HTML(rendered)
			return view
		}
	}
	if body, ok := section.Content["html"].(string); ok && body != "" {
		// operator-authored markup is trusted as-is
		view.BodyHTML = template.HTML(body)
		return view
	}
	if body, ok := section.Content["body"].(string); ok && body != "" {
		rendered, err := r.markdown.Render([]byte(body))
		if err == nil {
			view.BodyHTML = template.HTML(rendered)
			return view
		}
	}

	view.Fields = genericFields(section.Content)
	return view
}

// genericFields flattens scalar content entries for sections without a
// recognized body, keeping output deterministic by sorting labels.
func genericFields(content map[string]any) []Field {
	out := make([]Field, 0, len(content))
	for key, value := range content {
		if key == "title" {
			continue
		}
		switch v := value.(type) {
		case string:
			out = append(out, Field{Label: key, Value: v})
		case float64, int, int64, bool:
			out = append(out, Field{Label: key, Value: fmt.Sprint(v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Render writes the full document for a view.
func (r *Renderer) Render(w io.Writer, view PageView) error {
	if err := r.layout.Execute(w, view); err != nil {
		return fmt.Errorf("render page %s: %w", view.Path, err)
	}
	return nil
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{.HeadHTML}}</head>
<body data-component="{{.ComponentKey}}">
{{- if .Header}}
<header class="site-header">
{{- if .Header.Logo}}
<a class="logo" href="/"><img src="{{.Header.Logo}}" alt="{{$.Title}}"></a>
{{- end}}
<nav>
{{- range .Header.NavLinks}}
<a href="{{.Href}}">{{.Label}}</a>
{{- end}}
</nav>
{{- if .Header.CTA}}
<a class="cta" href="{{.Header.CTA.Href}}">{{.Header.CTA.Label}}</a>
{{- end}}
</header>
{{- end}}
<main>
{{- if .NotFound}}
<section class="not-found">
<h1>Page not found</h1>
<p>The page {{.Path}} does not exist.</p>
</section>
{{- else if .StaticHTML}}
<article class="static-page">{{.StaticHTML}}</article>
{{- else}}
{{- range .Sections}}
<section class="content-section" data-section="{{.Key}}">
{{- if .Title}}
<h2>{{.Title}}</h2>
{{- end}}
{{- if .BodyHTML}}
{{.BodyHTML}}
{{- else}}
<dl>
{{- range .Fields}}
<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{- end}}
</dl>
{{- end}}
{{- range $name, $src := .Images}}
<img data-image="{{$name}}" src="{{$src}}" alt="{{$name}}">
{{- end}}
</section>
{{- end}}
{{- if .Locations}}
<section class="locations">
{{- range .Locations}}
<article class="location">
<h3>{{.CityName}}, {{.CountryName}}</h3>
{{- if .Address}}<p>{{.Address}}</p>{{- end}}
{{- if .Email}}<p><a href="mailto:{{.Email}}">{{.Email}}</a></p>{{- end}}
</article>
{{- end}}
</section>
{{- end}}
{{- end}}
</main>
</body>
</html>
`
