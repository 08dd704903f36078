// Package table provides the in-memory table model that flows through the
// cleaning pipeline: named columns of tri-state cells aligned by row index.
//
// Tables are treated as immutable values. Accessors hand out copies, and
// every stage builds a fresh table with New, so an earlier stage's output
// stays inspectable after later stages run.
package table

import (
	"github.com/ajitpratap0/tabclean/pkg/errors"
)

// Table is an ordered set of uniquely named columns with equal row counts
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a table from columns. Columns are copied. Names must be unique
// and every column must have the same number of cells.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		if _, dup := t.index[col.Name]; dup {
			return nil, errors.Newf(errors.ErrorTypeValidation, "duplicate column name %q", col.Name).
				WithDetail("column", col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, errors.Newf(errors.ErrorTypeShape, "column %q has %d rows, expected %d", col.Name, col.Len(), t.rows).
				WithDetail("column", col.Name).
				WithDetail("rows", col.Len()).
				WithDetail("expected", t.rows)
		}
		t.index[col.Name] = i
		t.columns = append(t.columns, col.Clone())
	}
	return t, nil
}

// MustNew is New that panics on error. Intended for tests and literals.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromRecords builds a text table from CSV-style records. Every value becomes
// a text cell, including empty strings. Short rows are padded with missing
// cells; rows longer than the header are a shape error.
func FromRecords(header []string, rows [][]string) (*Table, error) {
	cols := make([]Column, len(header))
	for j, name := range header {
		cols[j] = Column{Name: name, Cells: make([]Cell, len(rows))}
	}
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, errors.Newf(errors.ErrorTypeShape, "row %d has %d fields, header has %d", i, len(row), len(header)).
				WithDetail("row", i)
		}
		for j, v := range row {
			cols[j].Cells[i] = Text(v)
		}
	}
	return New(cols...)
}

// Rows returns the number of rows
func (t *Table) Rows() int { return t.rows }

// Width returns the number of columns
func (t *Table) Width() int { return len(t.columns) }

// Names returns the column names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns a copy of the i-th column
func (t *Table) Column(i int) Column {
	return t.columns[i].Clone()
}

// Columns returns copies of all columns in order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Clone()
	}
	return out
}

// Index returns the position of the named column
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Has reports whether the named column exists
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnByName returns a copy of the named column
func (t *Table) ColumnByName(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i].Clone(), true
}

// Cell returns the cell at row in the named column
func (t *Table) Cell(row int, name string) (Cell, bool) {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= t.rows {
		return Cell{}, false
	}
	return t.columns[i].Cells[row], true
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out, _ := New(t.columns...)
	return out
}

// Equal reports whether both tables have the same names, order and cells
func (t *Table) Equal(o *Table) bool {
	if t.Width() != o.Width() || t.rows != o.rows {
		return false
	}
	for i, c := range t.columns {
		oc := o.columns[i]
		if c.Name != oc.Name {
			return false
		}
		for r := range c.Cells {
			if !c.Cells[r].Equal(oc.Cells[r]) {
				return false
			}
		}
	}
	return true
}

// Records renders the table as a header and string rows, the inverse of
// FromRecords. Missing cells render as empty strings.
func (t *Table) Records() (header []string, rows [][]string) {
	header = t.Names()
	rows = make([][]string, t.rows)
	for r := 0; r < t.rows; r++ {
		row := make([]string, len(t.columns))
		for j, c := range t.columns {
			row[j] = c.Cells[r].String()
		}
		rows[r] = row
	}
	return header, rows
}

// MapCells returns a new table with fn applied to every cell. Names and shape
// are unchanged.
func (t *Table) MapCells(fn func(Cell) Cell) *Table {
	out := &Table{
		columns: make([]Column, len(t.columns)),
		index:   make(map[string]int, len(t.columns)),
		rows:    t.rows,
	}
	for i, c := range t.columns {
		out.columns[i] = c.Map(fn)
		out.index[c.Name] = i
	}
	return out
}

// Subset returns a new table holding the rows and columns whose flags are
// true. keepRows must have Rows() entries and keepCols Width() entries.
func (t *Table) Subset(keepRows, keepCols []bool) *Table {
	out := &Table{index: make(map[string]int)}
	for r, keep := range keepRows {
		if keep && r < t.rows {
			out.rows++
		}
	}
	for j, c := range t.columns {
		if j >= len(keepCols) || !keepCols[j] {
			continue
		}
		cells := make([]Cell, 0, out.rows)
		for r, cell := range c.Cells {
			if r < len(keepRows) && keepRows[r] {
				cells = append(cells, cell)
			}
		}
		out.index[c.Name] = len(out.columns)
		out.columns = append(out.columns, Column{Name: c.Name, Cells: cells})
	}
	if len(out.columns) == 0 {
		out.rows = 0
	}
	return out
}
