package stages

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// PruneStats reports what DropEmpty removed
type PruneStats struct {
	RowsDropped    int `json:"rows_dropped"`
	ColumnsDropped int `json:"columns_dropped"`
}

// BlankToMissing replaces every text cell that is empty or entirely
// whitespace with the missing marker. Everything else is kept as is.
func BlankToMissing(t *table.Table) *table.Table {
	return t.MapCells(func(c table.Cell) table.Cell {
		if s, ok := c.AsText(); ok && strings.TrimSpace(s) == "" {
			return table.Missing()
		}
		return c
	})
}

// StripWhitespace trims column names and text cells. Numeric cells are not
// touched. Two names that only differed by surrounding whitespace are a
// validation error.
func StripWhitespace(t *table.Table) (*table.Table, error) {
	cols := t.Columns()
	for i, c := range cols {
		c = c.Map(func(cell table.Cell) table.Cell {
			if s, ok := cell.AsText(); ok {
				return table.Text(strings.TrimSpace(s))
			}
			return cell
		})
		c.Name = strings.TrimSpace(c.Name)
		cols[i] = c
	}
	out, err := table.New(cols...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "column names collide after trimming")
	}
	return out, nil
}

// DropEmpty removes every row and every column in which all cells are
// missing. The masks are computed on the input, so a column made only of
// missing cells is dropped even when its rows survive.
func DropEmpty(t *table.Table) (*table.Table, PruneStats) {
	var stats PruneStats

	keepCols := make([]bool, t.Width())
	keepRows := make([]bool, t.Rows())
	for j, c := range t.Columns() {
		for r, cell := range c.Cells {
			if !cell.IsMissing() {
				keepCols[j] = true
				keepRows[r] = true
			}
		}
		if !keepCols[j] {
			stats.ColumnsDropped++
		}
	}
	for _, keep := range keepRows {
		if !keep {
			stats.RowsDropped++
		}
	}
	return t.Subset(keepRows, keepCols), stats
}

// Normalizer is the first stage: blank-to-missing, trimming, then pruning
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer stage. A nil logger discards output.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: loggerOrNop(logger)}
}

// Name implements the pipeline stage interface
func (n *Normalizer) Name() string { return NameNormalize }

// Apply runs the stage
func (n *Normalizer) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	out, err := StripWhitespace(BlankToMissing(t))
	if err != nil {
		return nil, err
	}
	out, stats := DropEmpty(out)

	logger.WithContext(ctx, n.logger).Info("pruned empty rows and columns",
		zap.Int("rows_dropped", stats.RowsDropped),
		zap.Int("columns_dropped", stats.ColumnsDropped),
		zap.Int("rows", out.Rows()),
		zap.Int("columns", out.Width()))
	metrics.Add(metrics.RowsDropped, stats.RowsDropped)
	metrics.Add(metrics.ColumnsDropped, stats.ColumnsDropped)
	return out, nil
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	return logger.OrNop(l)
}
