package sheets

import "fmt"

// Table is a fetched sheet tab: the header row plus data rows. Cells come
// back as strings; callers reconstruct typed objects by header name, so
// column order is irrelevant but header names are load-bearing.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColIndex returns the 0-based index of a header, or -1 when the header is
// not present.
func (t *Table) ColIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// Col returns the 1-based sheet column of a header, or 0 when missing.
func (t *Table) Col(header string) int {
	return t.ColIndex(header) + 1
}

// Value returns the cell at data row i under the given header. Short rows
// and unknown headers read as empty, matching how the Sheets API trims
// trailing blanks.
func (t *Table) Value(i int, header string) string {
	col := t.ColIndex(header)
	if col < 0 || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][col]
}

// SheetRow converts a data row index to its 1-based sheet row number.
func (t *Table) SheetRow(i int) int {
	return i + 2
}

// CellAt builds an update targeting data row i under the given header.
func (t *Table) CellAt(i int, header string, value interface{}) (CellUpdate, error) {
	col := t.Col(header)
	if col == 0 {
		return CellUpdate{}, fmt.Errorf("table %s has no header %q", t.Name, header)
	}
	return Cell(t.Name, col, t.SheetRow(i), value), nil
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
