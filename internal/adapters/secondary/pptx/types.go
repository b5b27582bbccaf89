// Package pptx reads PPTX (Office Open XML presentation) containers and
// adapts them to the domain's DeckReader port.
package pptx

import "encoding/xml"

// Required container parts. A zip archive missing either is not a deck.
const (
	contentTypesPart = "[Content_Types].xml"
	presentationPart = "ppt/presentation.xml"
	presRelsPart     = "ppt/_rels/presentation.xml.rels"
	corePropsPart    = "docProps/core.xml"
)

// slideRelType marks a presentation relationship pointing at a slide part.
const slideRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"

// presentationXML mirrors ppt/presentation.xml.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIDList *slideIDListXML `xml:"sldIdLst"`
}

type slideIDListXML struct {
	SlideIDs []slideIDXML `xml:"sldId"`
}

type slideIDXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// relationshipsXML mirrors .rels parts.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// slideXML mirrors a ppt/slides/slideN.xml part.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"spTree"`
}

// spTreeXML is the shape tree listing all shapes on a slide, in the
// order the container declares them.
type spTreeXML struct {
	Shapes []shapeXML `xml:"sp"`
	Groups []groupXML `xml:"grpSp"`
}

// shapeXML is a single shape. Shapes without a text body (pictures,
// connectors, graphics) simply decode with a nil TxBody.
type shapeXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	NvPr nvPrXML `xml:"nvPr"`
}

type nvPrXML struct {
	Ph *placeholderXML `xml:"ph"`
}

// placeholderXML carries the placeholder role; "title" and "ctrTitle"
// designate the slide's title shape.
type placeholderXML struct {
	Type string `xml:"type,attr"`
	Idx  int    `xml:"idx,attr"`
}

func (p *placeholderXML) isTitle() bool {
	return p != nil && (p.Type == "title" || p.Type == "ctrTitle")
}

// groupXML is a grouped shape; groups nest.
type groupXML struct {
	Shapes []shapeXML `xml:"sp"`
	Groups []groupXML `xml:"grpSp"`
}

type txBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs   []runXML   `xml:"r"`
	Fields []fieldXML `xml:"fld"`
}

type runXML struct {
	Text string `xml:"t"`
}

// fieldXML is a generated field such as a slide number; its cached text
// participates in extraction like a run.
type fieldXML struct {
	Type string `xml:"type,attr"`
	Text string `xml:"t"`
}

// corePropertiesXML mirrors docProps/core.xml (Dublin Core metadata).
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Creator string   `xml:"creator"`
}
