package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders operator-authored markdown to HTML. The engine is
// stateless; one instance serves all requests.
type Markdown struct {
	engine goldmark.Markdown
}

// NewMarkdown constructs the renderer with GFM extensions and raw HTML
// passthrough. Content authors are trusted operators; their markup is not
// sanitized.
func NewMarkdown() *Markdown {
	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts markdown to HTML.
func (m *Markdown) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
