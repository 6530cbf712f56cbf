package workbook

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yurifrl/termsheet/pkg/models"
)

func newSheet(fields ...string) *models.TermSheet {
	sheet := models.NewTermSheet()
	for i := 0; i+1 < len(fields); i += 2 {
		sheet.Fields.Add(fields[i], fields[i+1])
	}
	return sheet
}

func TestSave(t *testing.T) {
	sheet := newSheet("Issue Price", "Rs. 95,500/-", "Tenor In Days", "730")
	path := filepath.Join(t.TempDir(), "terms.xlsx")

	require.NoError(t, New(log.New(io.Discard)).Save(path, sheet))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TermsSheet}, f.GetSheetList())

	rows, err := f.GetRows(TermsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Issue Price", "Tenor In Days"},
		{"Rs. 95,500/-", "730"},
	}, rows)

	width, err := f.GetColWidth(TermsSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 14.0, width)
}

func TestSaveCapsColumnWidth(t *testing.T) {
	long := "75 Debentures bearing face value of Rs. 1,00,000/- each, issued at Rs.95,500/-"
	path := filepath.Join(t.TempDir(), "terms.xlsx")

	require.NoError(t, New(log.New(io.Discard)).Save(path, newSheet("Issue Size", long)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(TermsSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 50.0, width)
}

func TestWriteWithDebugLog(t *testing.T) {
	sheet := newSheet("Issue Price", "Rs. 95,500/-")
	sheet.Debug = []models.DebugEntry{
		models.NewDebugEntry(0, 2, "Strategy1_Col1→Col2", "Issue Price", "Rs. 95,500/-", models.Row{"Issue Price", "Rs. 95,500/-"}),
	}

	var buf bytes.Buffer
	require.NoError(t, New(log.New(io.Discard)).Write(&buf, sheet))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TermsSheet, DebugSheet}, f.GetSheetList())

	rows, err := f.GetRows(DebugSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		models.DebugColumns,
		{"1", "3", "Strategy1_Col1→Col2", "Issue Price", "Rs. 95,500/-", "Col1: Issue Price | Col2: Rs. 95,500/-"},
	}, rows)
}

func TestAppend(t *testing.T) {
	w := New(log.New(io.Discard))
	path := filepath.Join(t.TempDir(), "register.xlsx")

	require.NoError(t, w.Append(path, newSheet("Product Code", "NCD 129", "Face Value", "Rs. 1,00,000")))

	second := newSheet("Face Value", "Rs. 10,00,000", "Issue Price", "Rs. 9,55,000")
	second.Debug = []models.DebugEntry{
		models.NewDebugEntry(0, 0, "Single_Col1", "Face Value", "Rs. 10,00,000", models.Row{"Face Value"}),
	}
	require.NoError(t, w.Append(path, second))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TermsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Product Code", "Face Value", "Issue Price"},
		{"NCD 129", "Rs. 1,00,000"},
		{"", "Rs. 10,00,000", "Rs. 9,55,000"},
	}, rows)

	debug, err := f.GetRows(DebugSheet)
	require.NoError(t, err)
	assert.Len(t, debug, 2)
}

func TestUnionColumns(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, unionColumns([]string{"a", "b"}, []string{"b", "c"}))
	assert.Equal(t, []string{"x"}, unionColumns(nil, []string{"x", "x"}))
}
