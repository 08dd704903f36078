package table

import (
	"math"
	"strconv"
)

// CellKind is the tri-state of a cell
type CellKind uint8

const (
	// CellMissing marks "no data". It is the zero value of Cell.
	CellMissing CellKind = iota
	// CellText holds a raw string
	CellText
	// CellNumber holds a float64
	CellNumber
)

// String returns the kind name
func (k CellKind) String() string {
	switch k {
	case CellMissing:
		return "missing"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Cell is a single table value: missing, text or number.
// Missing is distinct from Text("") and from Number(0).
type Cell struct {
	kind CellKind
	text string
	num  float64
}

// Missing returns the missing marker
func Missing() Cell { return Cell{} }

// Text returns a text cell
func Text(s string) Cell { return Cell{kind: CellText, text: s} }

// Number returns a numeric cell
func Number(f float64) Cell { return Cell{kind: CellNumber, num: f} }

// Kind returns the cell kind
func (c Cell) Kind() CellKind { return c.kind }

// IsMissing reports whether c is the missing marker
func (c Cell) IsMissing() bool { return c.kind == CellMissing }

// IsText reports whether c holds text
func (c Cell) IsText() bool { return c.kind == CellText }

// IsNumber reports whether c holds a number
func (c Cell) IsNumber() bool { return c.kind == CellNumber }

// AsText returns the text and true for text cells
func (c Cell) AsText() (string, bool) {
	if c.kind != CellText {
		return "", false
	}
	return c.text, true
}

// AsNumber returns the number and true for numeric cells
func (c Cell) AsNumber() (float64, bool) {
	if c.kind != CellNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell the way a CSV writer would: missing is empty,
// numbers use the shortest representation that round-trips.
func (c Cell) String() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return FormatNumber(c.num)
	default:
		return ""
	}
}

// Equal compares kind and payload. NaN numbers compare equal to each other.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case CellText:
		return c.text == o.text
	case CellNumber:
		if math.IsNaN(c.num) && math.IsNaN(o.num) {
			return true
		}
		return c.num == o.num
	default:
		return true
	}
}

// FormatNumber renders f in plain decimal notation with the fewest digits
// that round-trip.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
