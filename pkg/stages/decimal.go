package stages

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/numeric"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// RepairDecimals rewrites decimal commas in every text column and re-types a
// column as numeric when all of its non-missing cells then parse as numbers.
// A column with any cell that does not parse keeps its repaired text. The
// second return value lists the re-typed columns.
func RepairDecimals(t *table.Table) (*table.Table, []string) {
	var retyped []string
	cols := t.Columns()
	for i, c := range cols {
		if c.Kind() != table.KindText {
			continue
		}
		repaired := c.Map(func(cell table.Cell) table.Cell {
			if s, ok := cell.AsText(); ok {
				return table.Text(numeric.RepairDecimalComma(s))
			}
			return cell
		})
		if numbers, ok := asNumbers(repaired); ok {
			cols[i] = numbers
			retyped = append(retyped, c.Name)
			continue
		}
		cols[i] = repaired
	}
	// names and lengths are unchanged
	return table.MustNew(cols...), retyped
}

// asNumbers converts c to a numeric column if every cell that is not missing
// parses. A column without any text cell is not converted.
func asNumbers(c table.Column) (table.Column, bool) {
	out := table.Column{Name: c.Name, Cells: make([]table.Cell, len(c.Cells))}
	parsed := 0
	for i, cell := range c.Cells {
		switch {
		case cell.IsMissing(), cell.IsNumber():
			out.Cells[i] = cell
		default:
			s, _ := cell.AsText()
			res := numeric.Parse(s)
			if !res.OK {
				return c, false
			}
			out.Cells[i] = table.Number(res.Value)
			parsed++
		}
	}
	return out, parsed > 0
}

// DecimalRepairer is the decimal-comma repair stage
type DecimalRepairer struct {
	logger *zap.Logger
}

// NewDecimalRepairer creates the stage. A nil logger discards output.
func NewDecimalRepairer(logger *zap.Logger) *DecimalRepairer {
	return &DecimalRepairer{logger: loggerOrNop(logger)}
}

// Name implements the pipeline stage interface
func (d *DecimalRepairer) Name() string { return NameRepairDecimals }

// Apply runs the stage
func (d *DecimalRepairer) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	out, retyped := RepairDecimals(t)
	if len(retyped) > 0 {
		logger.WithContext(ctx, d.logger).Debug("re-typed columns as numeric", zap.Strings("columns", retyped))
	}
	metrics.Add(metrics.ColumnsRetyped, len(retyped))
	return out, nil
}
