package builders

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

// FixtureShape is one shape on a fixture slide.
type FixtureShape struct {
	// Placeholder is the ph type attribute; empty means no placeholder.
	Placeholder string
	// Paragraphs become <a:p> elements, one run each. A nil TxBody is
	// simulated by leaving Paragraphs nil and setting NoText.
	Paragraphs []string
	// NoText omits the text body entirely (e.g. a picture-like shape).
	NoText bool
}

// FixtureSlide is one slide in a PPTX fixture.
type FixtureSlide struct {
	Shapes []FixtureShape
}

// PPTXBuilder assembles a minimal but structurally valid PPTX archive
// on disk for reader tests.
type PPTXBuilder struct {
	slides    []FixtureSlide
	title     string
	author    string
	noRels    bool
	noPresXML bool
}

// NewPPTXBuilder creates an empty fixture builder
func NewPPTXBuilder() *PPTXBuilder {
	return &PPTXBuilder{}
}

// WithSlide appends a slide assembled from shapes
func (b *PPTXBuilder) WithSlide(shapes ...FixtureShape) *PPTXBuilder {
	b.slides = append(b.slides, FixtureSlide{Shapes: shapes})
	return b
}

// WithTitledSlide appends a slide with a title placeholder and plain
// body shapes, one per block
func (b *PPTXBuilder) WithTitledSlide(title string, blocks ...string) *PPTXBuilder {
	shapes := []FixtureShape{{Placeholder: "title", Paragraphs: []string{title}}}
	for _, block := range blocks {
		shapes = append(shapes, FixtureShape{Paragraphs: []string{block}})
	}
	return b.WithSlide(shapes...)
}

// WithUntitledSlide appends a slide with only body shapes
func (b *PPTXBuilder) WithUntitledSlide(blocks ...string) *PPTXBuilder {
	shapes := make([]FixtureShape, 0, len(blocks))
	for _, block := range blocks {
		shapes = append(shapes, FixtureShape{Paragraphs: []string{block}})
	}
	return b.WithSlide(shapes...)
}

// WithCoreProperties adds docProps/core.xml metadata
func (b *PPTXBuilder) WithCoreProperties(title, author string) *PPTXBuilder {
	b.title = title
	b.author = author
	return b
}

// WithoutRelationships omits the presentation rels part, forcing
// readers onto the filename-order fallback
func (b *PPTXBuilder) WithoutRelationships() *PPTXBuilder {
	b.noRels = true
	return b
}

// WithoutPresentationPart omits ppt/presentation.xml, producing an
// invalid container
func (b *PPTXBuilder) WithoutPresentationPart() *PPTXBuilder {
	b.noPresXML = true
	return b
}

// Write assembles the archive at path
func (b *PPTXBuilder) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	zw := zip.NewWriter(f)

	if err := writeZipEntry(zw, "[Content_Types].xml", b.contentTypesXML()); err != nil {
		return err
	}

	if !b.noPresXML {
		if err := writeZipEntry(zw, "ppt/presentation.xml", b.presentationXML()); err != nil {
			return err
		}
	}

	if !b.noRels {
		if err := writeZipEntry(zw, "ppt/_rels/presentation.xml.rels", b.presRelsXML()); err != nil {
			return err
		}
	}

	for i, slide := range b.slides {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := writeZipEntry(zw, name, slideXML(slide)); err != nil {
			return err
		}
	}

	if b.title != "" || b.author != "" {
		if err := writeZipEntry(zw, "docProps/core.xml", b.corePropsXML()); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeZipEntry(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(content))
	return err
}

func (b *PPTXBuilder) contentTypesXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
`)
	for i := range b.slides {
		fmt.Fprintf(&sb, `  <Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
`, i+1)
	}
	sb.WriteString("</Types>")
	return sb.String()
}

func (b *PPTXBuilder) presentationXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
`)
	for i := range b.slides {
		fmt.Fprintf(&sb, `    <p:sldId id="%d" r:id="rId%d"/>
`, 256+i, i+1)
	}
	sb.WriteString(`  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`)
	return sb.String()
}

func (b *PPTXBuilder) presRelsXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
`)
	for i := range b.slides {
		fmt.Fprintf(&sb, `  <Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>
`, i+1, i+1)
	}
	sb.WriteString("</Relationships>")
	return sb.String()
}

func (b *PPTXBuilder) corePropsXML() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>%s</dc:title>
  <dc:creator>%s</dc:creator>
</cp:coreProperties>`, xmlEscape(b.title), xmlEscape(b.author))
}

func slideXML(slide FixtureSlide) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
      </p:nvGrpSpPr>
`)
	for i, shape := range slide.Shapes {
		sb.WriteString(shapeFixtureXML(i+2, shape))
	}
	sb.WriteString(`    </p:spTree>
  </p:cSld>
</p:sld>`)
	return sb.String()
}

func shapeFixtureXML(id int, shape FixtureShape) string {
	var sb strings.Builder
	sb.WriteString("      <p:sp>\n        <p:nvSpPr>\n")
	fmt.Fprintf(&sb, `          <p:cNvPr id="%d" name="Shape %d"/>
`, id, id)
	if shape.Placeholder != "" {
		fmt.Fprintf(&sb, `          <p:nvPr><p:ph type="%s"/></p:nvPr>
`, shape.Placeholder)
	} else {
		sb.WriteString("          <p:nvPr/>\n")
	}
	sb.WriteString("        </p:nvSpPr>\n        <p:spPr/>\n")

	if !shape.NoText {
		sb.WriteString("        <p:txBody>\n          <a:bodyPr/>\n")
		for _, para := range shape.Paragraphs {
			fmt.Fprintf(&sb, "          <a:p><a:r><a:t>%s</a:t></a:r></a:p>\n", xmlEscape(para))
		}
		sb.WriteString("        </p:txBody>\n")
	}

	sb.WriteString("      </p:sp>\n")
	return sb.String()
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
