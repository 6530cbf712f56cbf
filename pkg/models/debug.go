package models

import (
	"fmt"
	"strconv"
	"strings"
)

const maxDebugValueLen = 100

// DebugColumns are the column headers of a debug log sheet.
var DebugColumns = []string{"Table", "Row", "Method", "Key", "Value", "Original_Cells"}

// DebugEntry records one extraction decision.
type DebugEntry struct {
	Table         int    `json:"table"`
	Row           int    `json:"row"`
	Method        string `json:"method"`
	Key           string `json:"key"`
	Value         string `json:"value"`
	OriginalCells string `json:"original_cells"`
}

// NewDebugEntry builds an entry from zero-based table and row indexes.
func NewDebugEntry(tableIdx, rowIdx int, method, key, value string, cells Row) DebugEntry {
	return DebugEntry{
		Table:         tableIdx + 1,
		Row:           rowIdx + 1,
		Method:        method,
		Key:           key,
		Value:         truncate(value, maxDebugValueLen),
		OriginalCells: renderCells(cells),
	}
}

// Record returns the entry as strings ordered like DebugColumns.
func (e DebugEntry) Record() []string {
	return []string{
		strconv.Itoa(e.Table),
		strconv.Itoa(e.Row),
		e.Method,
		e.Key,
		e.Value,
		e.OriginalCells,
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func renderCells(cells Row) string {
	parts := make([]string, 0, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Col%d: %s", i+1, c))
	}
	return strings.Join(parts, " | ")
}
