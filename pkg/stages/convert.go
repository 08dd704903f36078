package stages

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/numeric"
	"github.com/ajitpratap0/tabclean/pkg/table"
	"github.com/ajitpratap0/tabclean/pkg/units"
)

// ConvertStats counts what ConvertPair and ConvertUnits did
type ConvertStats struct {
	Pairs     int            `json:"pairs"`
	Converted map[string]int `json:"converted"` // by category
	Unknown   int            `json:"unknown"`
}

func (s *ConvertStats) merge(o ConvertStats) {
	if s.Converted == nil {
		s.Converted = make(map[string]int)
	}
	s.Pairs += o.Pairs
	s.Unknown += o.Unknown
	for k, n := range o.Converted {
		s.Converted[k] += n
	}
}

// Pair names a value/unit column pair sharing a base name
type Pair struct {
	Base  string
	Value string
	Unit  string
}

// FindPairs returns every <base>_value column that has a matching
// <base>_unit column, in column order.
func FindPairs(t *table.Table) []Pair {
	var pairs []Pair
	for _, name := range t.Names() {
		if !strings.HasSuffix(name, ValueSuffix) {
			continue
		}
		base := strings.TrimSuffix(name, ValueSuffix)
		if t.Has(base + UnitSuffix) {
			pairs = append(pairs, Pair{Base: base, Value: name, Unit: base + UnitSuffix})
		}
	}
	return pairs
}

// ConvertPair rescales every row of a value/unit pair into canonical units
// and returns the new columns. Rows with a missing value or unit, an
// unparseable magnitude or an unknown unit are left as they were. The value
// column is then coerced to numbers; cells that are not numbers become
// missing. Columns of different lengths are a shape error.
func ConvertPair(values, unitCol table.Column) (table.Column, table.Column, ConvertStats, error) {
	stats := ConvertStats{Converted: make(map[string]int)}
	if values.Len() != unitCol.Len() {
		return table.Column{}, table.Column{}, stats,
			errors.Newf(errors.ErrorTypeShape, "value column %q has %d rows, unit column %q has %d",
				values.Name, values.Len(), unitCol.Name, unitCol.Len()).
				WithDetail("value_column", values.Name).
				WithDetail("unit_column", unitCol.Name)
	}

	outValues := values.Clone()
	outUnits := unitCol.Clone()
	for i := range outValues.Cells {
		v, u := outValues.Cells[i], outUnits.Cells[i]
		if v.IsMissing() || u.IsMissing() {
			continue
		}
		mag, ok := magnitude(v)
		if !ok {
			continue
		}
		conv, ok := units.Lookup(u.String())
		if !ok {
			stats.Unknown++
			continue
		}
		outValues.Cells[i] = table.Number(conv.Apply(mag))
		outUnits.Cells[i] = table.Text(conv.Canonical)
		stats.Converted[conv.Kind.String()]++
	}

	outValues = outValues.Map(func(c table.Cell) table.Cell {
		if mag, ok := magnitude(c); ok {
			return table.Number(mag)
		}
		return table.Missing()
	})
	stats.Pairs = 1
	return outValues, outUnits, stats, nil
}

func magnitude(c table.Cell) (float64, bool) {
	if f, ok := c.AsNumber(); ok {
		return f, true
	}
	if s, ok := c.AsText(); ok {
		res := numeric.Parse(s)
		return res.Value, res.OK
	}
	return 0, false
}

// ConvertUnits converts every value/unit pair of t. Pairs are independent
// and run concurrently on up to workers goroutines (no limit when workers is
// not positive). Any failing pair fails the whole call and no table is
// returned.
func ConvertUnits(ctx context.Context, t *table.Table, workers int) (*table.Table, ConvertStats, error) {
	stats := ConvertStats{Converted: make(map[string]int)}
	pairs := FindPairs(t)
	if len(pairs) == 0 {
		return t.Clone(), stats, nil
	}

	type result struct {
		values, units table.Column
		stats         ConvertStats
	}
	results := make([]result, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrorTypeCanceled, "unit conversion canceled")
			}
			values, _ := t.ColumnByName(p.Value)
			unitCol, _ := t.ColumnByName(p.Unit)
			v, u, s, err := ConvertPair(values, unitCol)
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeShape, "convert pair "+p.Base).
					WithDetail("pair", p.Base)
			}
			results[i] = result{values: v, units: u, stats: s}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	cols := t.Columns()
	for i, p := range pairs {
		vi, _ := t.Index(p.Value)
		ui, _ := t.Index(p.Unit)
		cols[vi] = results[i].values
		cols[ui] = results[i].units
		stats.merge(results[i].stats)
	}
	// names and lengths are unchanged
	return table.MustNew(cols...), stats, nil
}

// UnitConverter is the unit conversion stage
type UnitConverter struct {
	workers int
	logger  *zap.Logger
}

// NewUnitConverter creates the stage. workers bounds the number of pairs
// converted at once. A nil logger discards output.
func NewUnitConverter(workers int, logger *zap.Logger) *UnitConverter {
	return &UnitConverter{workers: workers, logger: loggerOrNop(logger)}
}

// Name implements the pipeline stage interface
func (c *UnitConverter) Name() string { return NameConvertUnits }

// Apply runs the stage
func (c *UnitConverter) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	out, stats, err := ConvertUnits(ctx, t, c.workers)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(stats.Converted))
	for k, n := range stats.Converted {
		metrics.AddConverted(k, n)
		categories = append(categories, k)
	}
	sort.Strings(categories)
	metrics.Add(metrics.UnknownUnits, stats.Unknown)

	logger.WithContext(ctx, c.logger).Debug("converted units",
		zap.Int("pairs", stats.Pairs),
		zap.Strings("categories", categories),
		zap.Int("unknown_units", stats.Unknown))
	return out, nil
}
