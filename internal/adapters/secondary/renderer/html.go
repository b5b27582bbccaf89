// Package renderer produces the derived HTML view of a converted
// document. It is strictly downstream of the markdown output: a failure
// here never affects an already-written document.
package renderer

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// HTMLRenderer implements the HTMLRenderer port using Goldmark
type HTMLRenderer struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	sanitize bool
	title    string
}

// Option configures the renderer
type Option func(*HTMLRenderer)

// WithSanitization runs every rendered page through the HTML policy
func WithSanitization() Option {
	return func(r *HTMLRenderer) { r.sanitize = true }
}

// WithTitle sets the page title of rendered documents
func WithTitle(title string) Option {
	return func(r *HTMLRenderer) { r.title = title }
}

// NewHTMLRenderer creates a Goldmark-based HTML renderer
func NewHTMLRenderer(opts ...Option) *HTMLRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // GitHub Flavored Markdown
			extension.Typographer, // Smart punctuation
			extension.Table,
			extension.Strikethrough,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
		),
	)

	r := &HTMLRenderer{
		md:     md,
		policy: createDocumentPolicy(),
		title:  "deckmd",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts markdown into a standalone styled HTML page
func (r *HTMLRenderer) Render(markdown []byte) (string, error) {
	var body bytes.Buffer
	if err := r.md.Convert(markdown, &body); err != nil {
		return "", entities.NewRenderError(err)
	}

	content := body.String()
	if r.sanitize {
		content = r.policy.Sanitize(content)
	}

	return fmt.Sprintf(pageTemplate, html.EscapeString(r.title), content), nil
}

// Sanitize strips unsafe markup from rendered HTML
func (r *HTMLRenderer) Sanitize(raw string) string {
	return r.policy.Sanitize(raw)
}

// DisplayTitle derives a human readable page title from a deck path:
// "quarterly_review.pptx" becomes "Quarterly Review".
func DisplayTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.TrimSpace(base)
	if base == "" {
		return "Untitled Deck"
	}
	return cases.Title(language.English).String(base)
}

// createDocumentPolicy creates a restrictive HTML sanitizer for
// converted document content.
func createDocumentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	// Allow basic text formatting
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("p", "br", "hr")
	p.AllowElements("strong", "b", "em", "i", "u", "s", "mark", "del")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowElements("a").AllowAttrs("href").OnElements("a")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")

	// Allow safe attributes
	p.AllowAttrs("class", "id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "p", "pre", "code")

	return p
}

// pageTemplate mirrors the document styling of the desktop preview the
// converter replaces: a readable single column with ruled separators.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body {
    font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
    max-width: 48rem;
    margin: 2rem auto;
    padding: 0 1rem;
    line-height: 1.6;
    color: #24292f;
}
h1 { border-bottom: 1px solid #d0d7de; padding-bottom: 0.3em; }
h2 { margin-top: 1.5em; }
hr { border: 0; border-top: 1px solid #d0d7de; margin: 2em 0; }
pre {
    background: #f6f8fa;
    padding: 1em;
    border-radius: 6px;
    overflow-x: auto;
}
code { font-family: ui-monospace, "SFMono-Regular", Menlo, monospace; }
</style>
</head>
<body>
%s
</body>
</html>
`
