package extract

import (
	"strings"

	"github.com/yurifrl/termsheet/pkg/models"
)

// sectionHeader marks a row that introduces a section rather than a field.
const sectionHeader = "TERMS OF ISSUE"

// NormalizeCell collapses every run of whitespace, including newlines and
// tabs, to a single space and trims the result.
func NormalizeCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeRow returns a cleaned copy of raw with the same length.
func NormalizeRow(raw models.Row) models.Row {
	cells := make(models.Row, len(raw))
	for i, c := range raw {
		cells[i] = NormalizeCell(c)
	}
	return cells
}

// Skip reports whether a normalized row must not reach the strategies:
// either all of its cells are empty or it is a section header.
func Skip(cells models.Row) bool {
	if cells.IsEmpty() {
		return true
	}
	for _, c := range cells {
		if strings.Contains(strings.ToUpper(c), sectionHeader) {
			return true
		}
	}
	return false
}

func countNonEmpty(cells models.Row) int {
	n := 0
	for _, c := range cells {
		if c != "" {
			n++
		}
	}
	return n
}
