// Package docx reads the tables of a DOCX (Office Open XML) document.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yurifrl/termsheet/pkg/models"
)

// ErrMissingDocument is returned when the archive has no word/document.xml.
var ErrMissingDocument = errors.New("missing " + documentPath)

// ReadTables returns the body-level tables of a DOCX document in order.
//
// A cell spanning several grid columns is repeated once per column, and a
// vertically merged continuation cell repeats the text of the cell it
// continues, so every row of a table has one entry per grid column.
func ReadTables(data []byte) ([]models.Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	content, err := readPart(zr, documentPath)
	if err != nil {
		return nil, err
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	tables := make([]models.Table, 0, len(doc.Body.Tables))
	for _, tbl := range doc.Body.Tables {
		t, err := convertTable(tbl)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrMissingDocument
}

func convertTable(tbl tableXML) (models.Table, error) {
	var (
		table models.Table
		above []string
	)

	for _, tr := range tbl.Rows {
		var row models.Row
		for _, tc := range tr.Cells {
			text, err := cellText(tc.Inner)
			if err != nil {
				return models.Table{}, err
			}

			span := 1
			if tc.Properties.GridSpan != nil {
				if n, err := strconv.Atoi(tc.Properties.GridSpan.Val); err == nil && n > 1 {
					span = n
				}
			}

			if vm := tc.Properties.VMerge; vm != nil && vm.Val != "restart" && len(row) < len(above) {
				text = above[len(row)]
			}

			for i := 0; i < span; i++ {
				row = append(row, text)
			}
		}
		table.Rows = append(table.Rows, row)
		above = row
	}
	return table, nil
}

// cellText joins the cell's paragraphs with newlines. Tables nested inside
// the cell are not part of its text.
func cellText(inner []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(inner))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing cell: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl", "tcPr", "pPr", "rPr":
				if err := dec.Skip(); err != nil {
					return "", fmt.Errorf("parsing cell: %w", err)
				}
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if depth--; depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if depth > 0 && inText {
				current.Write(el)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
