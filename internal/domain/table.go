package domain

import "fmt"

// Table is an ordered collection of named string columns, one cell per row.
// It is the loader's output: raw string representation is preserved so type
// coercion happens in one place, during normalization. Cells are addressed
// by column name only; column position never carries meaning.
type Table struct {
	headers []string
	columns map[string][]string
	rows    int
}

// NewTable creates an empty table with the given header. Duplicate header
// names are rejected because name-based access would become ambiguous.
func NewTable(headers []string) (*Table, error) {
	cols := make(map[string][]string, len(headers))
	for _, h := range headers {
		if _, dup := cols[h]; dup {
			return nil, fmt.Errorf("table: duplicate column %q in header", h)
		}
		cols[h] = nil
	}
	return &Table{
		headers: append([]string(nil), headers...),
		columns: cols,
	}, nil
}

// Headers returns the column names in file order.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return t.rows }

// Column returns the named column's cells in row order, and whether the
// column exists. The returned slice is the table's backing storage; callers
// must not mutate it.
func (t *Table) Column(name string) ([]string, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// AppendRow adds one row of cells in header order.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.headers) {
		return fmt.Errorf("table: row %d has %d fields, header has %d", t.rows, len(cells), len(t.headers))
	}
	for i, h := range t.headers {
		t.columns[h] = append(t.columns[h], cells[i])
	}
	t.rows++
	return nil
}
