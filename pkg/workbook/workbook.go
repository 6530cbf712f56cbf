// Package workbook writes term sheets to Excel workbooks.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
	"github.com/yurifrl/termsheet/pkg/models"
)

const (
	TermsSheet = "Terms"
	DebugSheet = "Debug_Log"

	termsFill     = "D7E4BC"
	debugFill     = "F9CB9C"
	termsMaxWidth = 50
	debugMaxWidth = 60
)

// Writer renders term sheets as workbooks with a Terms sheet and, when the
// sheet carries a debug trace, a Debug_Log sheet.
type Writer struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Writer {
	return &Writer{logger: logger}
}

// Build returns a new workbook holding sheet. Callers close the file.
func (w *Writer) Build(sheet *models.TermSheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), TermsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	fields := sheet.Fields.Fields()
	header := make([]string, len(fields))
	values := make([]string, len(fields))
	for i, fld := range fields {
		header[i] = fld.Key
		values[i] = fld.Value
	}

	if err := w.writeTerms(f, header, [][]string{values}); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeDebug(f, sheet.Debug); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// Write streams the workbook for sheet to out.
func (w *Writer) Write(out io.Writer, sheet *models.TermSheet) error {
	f, err := w.Build(sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// Save writes the workbook for sheet to path, replacing any existing file.
func (w *Writer) Save(path string, sheet *models.TermSheet) error {
	f, err := w.Build(sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", path, err)
	}
	w.logger.Info("saved workbook", "path", path, "fields", sheet.Fields.Len(), "debug_entries", len(sheet.Debug))
	return nil
}

// Append adds sheet as a new row of the workbook at path. Columns are the
// union of the existing header and the new keys; cells a row has no value
// for are left empty. Debug entries are appended to Debug_Log. A missing
// file is created with Save.
func (w *Writer) Append(path string, sheet *models.TermSheet) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return w.Save(path, sheet)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("error opening workbook %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]string
	if idx, _ := f.GetSheetIndex(TermsSheet); idx >= 0 {
		if rows, err = f.GetRows(TermsSheet); err != nil {
			return fmt.Errorf("error reading %s: %w", TermsSheet, err)
		}
	} else if _, err := f.NewSheet(TermsSheet); err != nil {
		return fmt.Errorf("error creating %s: %w", TermsSheet, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
		rows = rows[1:]
	}
	header = unionColumns(header, sheet.Fields.Keys())

	values := make([]string, len(header))
	for i, key := range header {
		values[i] = sheet.Fields.Value(key)
	}
	rows = append(rows, values)

	if err := w.writeTerms(f, header, rows); err != nil {
		return err
	}

	if len(sheet.Debug) > 0 {
		var existing [][]string
		if idx, _ := f.GetSheetIndex(DebugSheet); idx >= 0 {
			all, err := f.GetRows(DebugSheet)
			if err != nil {
				return fmt.Errorf("error reading %s: %w", DebugSheet, err)
			}
			if len(all) > 1 {
				existing = all[1:]
			}
		}
		if err := w.writeDebugRows(f, append(existing, debugRecords(sheet.Debug)...)); err != nil {
			return err
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", path, err)
	}
	w.logger.Info("appended to workbook", "path", path, "rows", len(rows), "columns", len(header))
	return nil
}

func (w *Writer) writeTerms(f *excelize.File, header []string, rows [][]string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{termsFill}, Pattern: 1},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    borders(),
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    borders(),
	})
	if err != nil {
		return fmt.Errorf("error creating data style: %w", err)
	}

	if err := writeSheet(f, TermsSheet, header, rows, termsMaxWidth, headerStyle); err != nil {
		return err
	}
	if len(header) > 0 && len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), len(rows)+1)
		if err := f.SetCellStyle(TermsSheet, "A2", last, dataStyle); err != nil {
			return fmt.Errorf("error styling %s: %w", TermsSheet, err)
		}
	}
	return nil
}

func (w *Writer) writeDebug(f *excelize.File, entries []models.DebugEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return w.writeDebugRows(f, debugRecords(entries))
}

func (w *Writer) writeDebugRows(f *excelize.File, rows [][]string) error {
	if idx, _ := f.GetSheetIndex(DebugSheet); idx < 0 {
		if _, err := f.NewSheet(DebugSheet); err != nil {
			return fmt.Errorf("error creating %s: %w", DebugSheet, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{debugFill}, Pattern: 1},
		Border: borders(),
	})
	if err != nil {
		return fmt.Errorf("error creating debug header style: %w", err)
	}

	w.logger.Debug("writing debug log", "entries", len(rows))
	return writeSheet(f, DebugSheet, models.DebugColumns, rows, debugMaxWidth, headerStyle)
}

// writeSheet writes header and rows starting at A1 and sizes every column to
// its longest cell plus two, capped at maxWidth.
func writeSheet(f *excelize.File, name string, header []string, rows [][]string, maxWidth, headerStyle int) error {
	if len(header) == 0 {
		return nil
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("error writing %s header: %w", name, err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("error writing %s row %d: %w", name, i+2, err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("error styling %s header: %w", name, err)
	}

	for col, title := range header {
		width := utf8.RuneCountInString(title)
		for _, row := range rows {
			if col < len(row) {
				if n := utf8.RuneCountInString(row[col]); n > width {
					width = n
				}
			}
		}
		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(name, colName, colName, float64(min(width+2, maxWidth))); err != nil {
			return fmt.Errorf("error sizing %s column %s: %w", name, colName, err)
		}
	}
	return nil
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func debugRecords(entries []models.DebugEntry) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = e.Record()
	}
	return out
}

// unionColumns returns existing followed by the keys it lacks, in order.
func unionColumns(existing, keys []string) []string {
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(keys))
	for _, k := range existing {
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
