package docx

import "encoding/xml"

// documentPath is the main part of a WordprocessingML package.
const documentPath = "word/document.xml"

// documentXML represents word/document.xml. Only body-level tables are kept.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

type bodyXML struct {
	Tables []tableXML `xml:"tbl"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Rows []rowXML `xml:"tr"`
}

// rowXML represents a table row (<w:tr>).
type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

// cellXML represents a table cell (<w:tc>). The content is kept raw so runs,
// tabs and breaks can be read in document order.
type cellXML struct {
	Properties cellPropsXML `xml:"tcPr"`
	Inner      []byte       `xml:",innerxml"`
}

// cellPropsXML represents the cell properties the reader cares about.
type cellPropsXML struct {
	GridSpan *valXML `xml:"gridSpan"`
	VMerge   *valXML `xml:"vMerge"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}
