package ports

import "github.com/fredcamaral/deckmd/internal/domain/entities"

// DocumentRenderer produces the markup fragments the conversion worker
// accumulates into the output document.
type DocumentRenderer interface {
	// RenderHeader renders the document header for a deck with the
	// given file name (extension retained) and metadata.
	RenderHeader(name string, meta entities.DeckMetadata) string

	// RenderSlide renders one slide section: heading, content blocks
	// and trailing separator.
	RenderSlide(slide *entities.Slide) string
}

// DocumentWriter persists a fully assembled document. The write must be
// atomic enough that a reader of the destination never observes a
// partial document under normal operation.
type DocumentWriter interface {
	Write(path string, content []byte) error
}

// HTMLRenderer produces the derived HTML view of a converted document.
// Failures here are reported separately from the conversion result and
// never unwind an already-successful conversion.
type HTMLRenderer interface {
	// Render converts markdown into a standalone styled HTML page.
	Render(markdown []byte) (string, error)

	// Sanitize strips unsafe markup from rendered HTML.
	Sanitize(html string) string
}
