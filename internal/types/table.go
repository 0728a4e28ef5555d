package types

// Table holds a delimited file in memory: the header row plus data rows in
// source order. Rows are positional; use ColumnIndex to resolve a header name.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or false if the
// header does not contain it.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value of the named column in the given row, or the empty
// string when the column is absent or the row is short.
func (t *Table) Cell(row []string, name string) string {
	idx, ok := t.ColumnIndex(name)
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
