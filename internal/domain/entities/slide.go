package entities

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

// Slide represents a single slide extracted from a deck
type Slide struct {
	// Index is the slide position in the deck (0-based)
	Index int `json:"index"`

	// Title is the trimmed text of the slide's title placeholder,
	// empty when the slide declares none
	Title string `json:"title,omitempty"`

	// ContentBlocks holds the trimmed, non-empty text of every
	// non-title shape on the slide, in shape order
	ContentBlocks []string `json:"content_blocks,omitempty"`
}

// Validate ensures the slide is internally consistent
func (s *Slide) Validate() error {
	if s.Index < 0 {
		return errors.New("slide index must be non-negative")
	}

	for _, block := range s.ContentBlocks {
		if strings.TrimSpace(block) == "" {
			return errors.New("slide content blocks cannot be empty")
		}
	}

	return nil
}

// HasTitle reports whether the slide carries a non-empty title placeholder
func (s *Slide) HasTitle() bool {
	return strings.TrimSpace(s.Title) != ""
}

// Heading returns the section heading for the slide: the title when
// present, otherwise a synthesized "Slide N" fallback (1-based)
func (s *Slide) Heading() string {
	if s.HasTitle() {
		return s.Title
	}
	return "Slide " + strconv.Itoa(s.Index+1)
}

// DeckMetadata holds optional document properties carried by the container
type DeckMetadata struct {
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	Slides int    `json:"slides" yaml:"slides"`
}

// Deck represents a fully read slide deck: the ordered slide sequence
// plus whatever metadata the container declares
type Deck struct {
	// SourcePath is the filesystem path the deck was read from
	SourcePath string `json:"source_path"`

	// Slides contains all slides in document order
	Slides []Slide `json:"slides"`

	// Metadata contains optional document properties (docProps)
	Metadata DeckMetadata `json:"metadata"`
}

// Validate ensures the deck and all of its slides are consistent
func (d *Deck) Validate() error {
	if d.SourcePath == "" {
		return errors.New("deck source path is required")
	}

	for i := range d.Slides {
		if err := d.Slides[i].Validate(); err != nil {
			return errors.New("slide " + strconv.Itoa(i+1) + ": " + err.Error())
		}
	}

	return nil
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// Name returns the deck's file name with its extension retained
func (d *Deck) Name() string {
	return filepath.Base(d.SourcePath)
}
