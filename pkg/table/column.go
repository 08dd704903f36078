package table

// Kind is the dtype of a column
type Kind uint8

const (
	// KindText is a column holding any text cell, or nothing but missing cells
	KindText Kind = iota
	// KindNumeric is a column holding at least one number and no text
	KindNumeric
)

// String returns the kind name
func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a named, ordered sequence of cells
type Column struct {
	Name  string
	Cells []Cell
}

// NewColumn creates a column from cells
func NewColumn(name string, cells ...Cell) Column {
	out := make([]Cell, len(cells))
	copy(out, cells)
	return Column{Name: name, Cells: out}
}

// TextColumn creates a text column from strings
func TextColumn(name string, values ...string) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Text(v)
	}
	return Column{Name: name, Cells: cells}
}

// NumberColumn creates a numeric column from floats
func NumberColumn(name string, values ...float64) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Number(v)
	}
	return Column{Name: name, Cells: cells}
}

// Len returns the number of cells
func (c Column) Len() int { return len(c.Cells) }

// Kind returns the column dtype. Mixed and all-missing columns are text.
func (c Column) Kind() Kind {
	numbers := 0
	for _, cell := range c.Cells {
		switch cell.Kind() {
		case CellText:
			return KindText
		case CellNumber:
			numbers++
		}
	}
	if numbers == 0 {
		return KindText
	}
	return KindNumeric
}

// AllMissing reports whether every cell is missing. An empty column is all missing.
func (c Column) AllMissing() bool {
	for _, cell := range c.Cells {
		if !cell.IsMissing() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy
func (c Column) Clone() Column {
	return NewColumn(c.Name, c.Cells...)
}

// Map returns a new column with the same name and fn applied to every cell
func (c Column) Map(fn func(Cell) Cell) Column {
	out := make([]Cell, len(c.Cells))
	for i, cell := range c.Cells {
		out[i] = fn(cell)
	}
	return Column{Name: c.Name, Cells: out}
}

// Rename returns a copy of c under a new name
func (c Column) Rename(name string) Column {
	out := c.Clone()
	out.Name = name
	return out
}
