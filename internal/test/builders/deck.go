// Package builders provides fluent test builders for domain entities
// and on-disk PPTX fixtures.
package builders

import (
	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{Index: 0},
	}
}

// WithIndex sets the slide index
func (b *SlideBuilder) WithIndex(index int) *SlideBuilder {
	b.slide.Index = index
	return b
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithBlocks sets the content blocks
func (b *SlideBuilder) WithBlocks(blocks ...string) *SlideBuilder {
	b.slide.ContentBlocks = blocks
	return b
}

// Build returns the built slide
func (b *SlideBuilder) Build() entities.Slide {
	return b.slide
}

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck entities.Deck
}

// NewDeckBuilder creates a deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: entities.Deck{
			SourcePath: "/tmp/test.pptx",
		},
	}
}

// WithSourcePath sets the deck source path
func (b *DeckBuilder) WithSourcePath(path string) *DeckBuilder {
	b.deck.SourcePath = path
	return b
}

// WithMetadata sets the deck metadata
func (b *DeckBuilder) WithMetadata(meta entities.DeckMetadata) *DeckBuilder {
	b.deck.Metadata = meta
	return b
}

// WithSlide appends a slide, fixing up its index to the next position
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	slide.Index = len(b.deck.Slides)
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// Build returns the built deck with the slide count reflected in the
// metadata
func (b *DeckBuilder) Build() *entities.Deck {
	deck := b.deck
	deck.Metadata.Slides = len(deck.Slides)
	return &deck
}
