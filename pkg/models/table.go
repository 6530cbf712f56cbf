package models

// Row is the ordered cell text of a single table row.
type Row []string

// Table is an ordered sequence of rows as read from a document.
type Table struct {
	Rows []Row
}

// NewTable builds a Table from raw cell text.
func NewTable(rows [][]string) Table {
	t := Table{Rows: make([]Row, len(rows))}
	for i, r := range rows {
		t.Rows[i] = Row(r)
	}
	return t
}

// IsEmpty reports whether every cell in the row is empty.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if c != "" {
			return false
		}
	}
	return true
}
