package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDebugEntry(t *testing.T) {
	cells := Row{"Issue Price", "", "Rs. 95,500"}
	e := NewDebugEntry(0, 4, "Strategy1_Col1→Col2", "Issue Price", "Rs. 95,500", cells)

	assert.Equal(t, 1, e.Table)
	assert.Equal(t, 5, e.Row)
	assert.Equal(t, "Col1: Issue Price | Col3: Rs. 95,500", e.OriginalCells)
	assert.Equal(t, []string{"1", "5", "Strategy1_Col1→Col2", "Issue Price", "Rs. 95,500", "Col1: Issue Price | Col3: Rs. 95,500"}, e.Record())
}

func TestNewDebugEntryTruncatesValue(t *testing.T) {
	long := strings.Repeat("a", 150)
	e := NewDebugEntry(1, 1, "Single_Col1", "k", long, Row{"k"})

	assert.Equal(t, strings.Repeat("a", 100)+"...", e.Value)

	exact := strings.Repeat("b", 100)
	e = NewDebugEntry(1, 1, "Single_Col1", "k", exact, Row{"k"})
	assert.Equal(t, exact, e.Value)
}
