// Package markdown assembles and persists the plain-text markup
// documents produced by a conversion run.
package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// Renderer implements the DocumentRenderer port. The emitted fragments
// follow a fixed contract: a level-1 heading per document, a level-2
// heading per slide, one paragraph per content block, and a horizontal
// rule after every slide, each element followed by a blank line.
type Renderer struct {
	frontMatter bool
}

// Option configures the renderer
type Option func(*Renderer)

// WithFrontMatter prepends YAML front matter carrying deck metadata to
// the document header. The body after the front matter is unchanged.
func WithFrontMatter() Option {
	return func(r *Renderer) { r.frontMatter = true }
}

// NewRenderer creates a markdown document renderer
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderHeader renders the document header: optional front matter, then
// a level-1 heading with the deck's file name (extension retained).
func (r *Renderer) RenderHeader(name string, meta entities.DeckMetadata) string {
	var b strings.Builder

	if r.frontMatter {
		if fm, err := yaml.Marshal(meta); err == nil {
			b.WriteString("---\n")
			b.Write(fm)
			b.WriteString("---\n\n")
		}
	}

	b.WriteString("# ")
	b.WriteString(name)
	b.WriteString("\n\n")
	return b.String()
}

// RenderSlide renders one slide section: the heading (title or "Slide N"
// fallback), each content block as its own paragraph, and the trailing
// separator.
func (r *Renderer) RenderSlide(slide *entities.Slide) string {
	var b strings.Builder

	b.WriteString("## ")
	b.WriteString(slide.Heading())
	b.WriteString("\n\n")

	for _, block := range slide.ContentBlocks {
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
	return b.String()
}
