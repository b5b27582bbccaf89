package pptx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// Reader implements the DeckReader port for PPTX containers.
type Reader struct{}

// NewReader creates a PPTX deck reader
func NewReader() *Reader {
	return &Reader{}
}

// Open reads the deck at path and returns its ordered slide sequence.
// The zip handle is held only for the duration of the call.
func (r *Reader) Open(ctx context.Context, path string) (*entities.Deck, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errorIsNotFound(err) {
			return nil, entities.NewNotFoundError(path, err)
		}
		return nil, entities.NewInvalidFormatError(path, err)
	}
	defer func() { _ = zr.Close() }()

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	for _, required := range []string{contentTypesPart, presentationPart} {
		if _, ok := parts[required]; !ok {
			return nil, entities.NewInvalidFormatError(path,
				fmt.Errorf("missing required part %s", required))
		}
	}

	var pres presentationXML
	if err := decodePart(parts[presentationPart], &pres); err != nil {
		return nil, entities.NewInvalidFormatError(path,
			fmt.Errorf("parsing presentation part: %w", err))
	}

	slideParts := orderedSlideParts(&pres, parts)

	deck := &entities.Deck{
		SourcePath: path,
		Slides:     make([]entities.Slide, 0, len(slideParts)),
	}

	for i, partName := range slideParts {
		if err := ctx.Err(); err != nil {
			return nil, entities.NewCancelledError(err)
		}

		part, ok := parts[partName]
		if !ok {
			return nil, entities.NewInvalidFormatError(path,
				fmt.Errorf("missing slide part %s", partName))
		}

		var sld slideXML
		if err := decodePart(part, &sld); err != nil {
			return nil, entities.NewInvalidFormatError(path,
				fmt.Errorf("parsing slide part %s: %w", partName, err))
		}

		deck.Slides = append(deck.Slides, extractSlide(i, &sld))
	}

	deck.Metadata = extractMetadata(parts)
	deck.Metadata.Slides = len(deck.Slides)

	return deck, nil
}

// errorIsNotFound distinguishes missing/unreadable sources from corrupt
// archives.
func errorIsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}

// decodePart reads and unmarshals one zip part.
func decodePart(f *zip.File, v interface{}) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	return xml.Unmarshal(data, v)
}

// orderedSlideParts returns slide part names in document order. The
// authoritative order is the sldIdLst resolved through the presentation
// relationships; decks missing either fall back to the numeric order of
// the slide part names.
func orderedSlideParts(pres *presentationXML, parts map[string]*zip.File) []string {
	if pres.SlideIDList != nil && len(pres.SlideIDList.SlideIDs) > 0 {
		if rels, ok := parts[presRelsPart]; ok {
			var relationships relationshipsXML
			if err := decodePart(rels, &relationships); err == nil {
				if ordered := resolveSlideOrder(pres, &relationships); len(ordered) > 0 {
					return ordered
				}
			}
		}
	}

	// Fallback: enumerate ppt/slides/slideN.xml sorted by N.
	names := make([]string, 0)
	for name := range parts {
		if strings.HasPrefix(name, "ppt/slides/slide") &&
			strings.HasSuffix(name, ".xml") &&
			!strings.Contains(name, "_rels") {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return slideNumber(names[i]) < slideNumber(names[j])
	})
	return names
}

// resolveSlideOrder maps the sldIdLst entries to part names via r:id.
func resolveSlideOrder(pres *presentationXML, rels *relationshipsXML) []string {
	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		if rel.Type == slideRelType {
			targets[rel.ID] = rel.Target
		}
	}

	ordered := make([]string, 0, len(pres.SlideIDList.SlideIDs))
	for _, sld := range pres.SlideIDList.SlideIDs {
		target, ok := targets[sld.RID]
		if !ok {
			return nil // incomplete relationships, let the caller fall back
		}
		ordered = append(ordered, normalizeTarget(target))
	}
	return ordered
}

// normalizeTarget resolves a relationship target against the ppt/ root.
func normalizeTarget(target string) string {
	switch {
	case strings.HasPrefix(target, "/"):
		return strings.TrimPrefix(target, "/")
	case strings.HasPrefix(target, "../"):
		return "ppt/" + strings.TrimPrefix(target, "../")
	case strings.HasPrefix(target, "ppt/"):
		return target
	default:
		return "ppt/" + target
	}
}

// slideNumber extracts N from "ppt/slides/slideN.xml".
func slideNumber(name string) int {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	var n int
	_, _ = fmt.Sscanf(trimmed, "%d", &n)
	return n
}

// extractSlide builds the domain slide from a decoded slide part. The
// title shape is identified by its placeholder role and excluded from
// the content blocks by identity, not by comparing strings.
func extractSlide(index int, sld *slideXML) entities.Slide {
	slide := entities.Slide{Index: index}

	titleSeen := false
	for i := range sld.CSld.SpTree.Shapes {
		sp := &sld.CSld.SpTree.Shapes[i]

		if !titleSeen && sp.NvSpPr.NvPr.Ph.isTitle() {
			titleSeen = true
			slide.Title = shapeText(sp)
			continue
		}

		if text := shapeText(sp); text != "" {
			slide.ContentBlocks = append(slide.ContentBlocks, text)
		}
	}

	for i := range sld.CSld.SpTree.Groups {
		collectGroupText(&sld.CSld.SpTree.Groups[i], &slide)
	}

	return slide
}

// collectGroupText appends text from grouped shapes, recursing into
// nested groups. Grouped shapes never act as the title placeholder.
func collectGroupText(grp *groupXML, slide *entities.Slide) {
	for i := range grp.Shapes {
		if text := shapeText(&grp.Shapes[i]); text != "" {
			slide.ContentBlocks = append(slide.ContentBlocks, text)
		}
	}
	for i := range grp.Groups {
		collectGroupText(&grp.Groups[i], slide)
	}
}

// shapeText extracts the trimmed text of a shape. Shapes without a text
// body yield the empty string, which callers treat as "skip".
func shapeText(sp *shapeXML) string {
	if sp.TxBody == nil {
		return ""
	}

	var b strings.Builder
	for _, p := range sp.TxBody.Paragraphs {
		var line strings.Builder
		for _, run := range p.Runs {
			line.WriteString(run.Text)
		}
		for _, fld := range p.Fields {
			line.WriteString(fld.Text)
		}

		text := strings.TrimSpace(line.String())
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	return strings.TrimSpace(b.String())
}

// extractMetadata reads optional docProps; absence is not an error.
func extractMetadata(parts map[string]*zip.File) entities.DeckMetadata {
	meta := entities.DeckMetadata{}

	core, ok := parts[corePropsPart]
	if !ok {
		return meta
	}

	var props corePropertiesXML
	if err := decodePart(core, &props); err != nil {
		return meta
	}

	meta.Title = strings.TrimSpace(props.Title)
	meta.Author = strings.TrimSpace(props.Creator)
	return meta
}
