package table

import (
	"math"

	"github.com/ajitpratap0/tabclean/pkg/json"
)

type jsonColumn struct {
	Name  string        `json:"name"`
	Kind  string        `json:"kind"`
	Cells []interface{} `json:"cells"`
}

type jsonTable struct {
	Rows    int          `json:"rows"`
	Columns []jsonColumn `json:"columns"`
}

// MarshalJSON renders a snapshot of the table. Missing cells are null,
// numbers are JSON numbers (non-finite ones as strings) and text is a string.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := jsonTable{
		Rows:    t.rows,
		Columns: make([]jsonColumn, len(t.columns)),
	}
	for i, c := range t.columns {
		cells := make([]interface{}, len(c.Cells))
		for r, cell := range c.Cells {
			switch cell.Kind() {
			case CellText:
				cells[r] = cell.text
			case CellNumber:
				if math.IsNaN(cell.num) || math.IsInf(cell.num, 0) {
					cells[r] = FormatNumber(cell.num)
				} else {
					cells[r] = cell.num
				}
			default:
				cells[r] = nil
			}
		}
		out.Columns[i] = jsonColumn{Name: c.Name, Kind: c.Kind().String(), Cells: cells}
	}
	return json.Marshal(out)
}
