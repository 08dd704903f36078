package stages

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/numeric"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// Column name suffixes of an extracted pair
const (
	ValueSuffix = "_value"
	UnitSuffix  = "_unit"
)

// numeral, optional space, unit token; micro sign and greek mu both count.
// Spaces include Unicode separators such as U+00A0 and U+202F.
var quantityPattern = regexp.MustCompile(`^[\s\p{Z}]*([0-9]+[.,]?[0-9]*)[\s\p{Z}]*([A-Za-zµμ°%]+)[\s\p{Z}]*$`)

// SplitQuantity splits s into its magnitude and unit token. The magnitude
// uses a decimal point even if s used a comma. ok is false when s does not
// have the "number unit" form.
func SplitQuantity(s string) (magnitude, unit string, ok bool) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return strings.Replace(m[1], ",", ".", 1), m[2], true
}

// ExtractUnits splits every text column that has at least one "number unit"
// cell into <name>_value and <name>_unit, placed where the column was.
// Cells that do not match, or whose magnitude does not parse, give missing
// in both new columns. Numeric columns and text columns without any match
// are passed through. It returns the names of the split columns.
func ExtractUnits(t *table.Table) (*table.Table, []string, error) {
	var split []string
	cols := make([]table.Column, 0, t.Width())
	for _, c := range t.Columns() {
		if c.Kind() != table.KindText {
			cols = append(cols, c)
			continue
		}
		values, units, matched := splitColumn(c)
		if !matched {
			cols = append(cols, c)
			continue
		}
		cols = append(cols, values, units)
		split = append(split, c.Name)
	}

	out, err := table.New(cols...)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeValidation, "extracted column names collide").
			WithDetail("split", split)
	}
	return out, split, nil
}

func splitColumn(c table.Column) (values, units table.Column, matched bool) {
	values = table.Column{Name: c.Name + ValueSuffix, Cells: make([]table.Cell, len(c.Cells))}
	units = table.Column{Name: c.Name + UnitSuffix, Cells: make([]table.Cell, len(c.Cells))}
	for i, cell := range c.Cells {
		if cell.IsMissing() {
			continue
		}
		// numbers inside a text column are matched on their rendered form
		mag, unit, ok := SplitQuantity(cell.String())
		if !ok {
			continue
		}
		matched = true
		units.Cells[i] = table.Text(unit)
		if res := numeric.Parse(mag); res.OK {
			values.Cells[i] = table.Number(res.Value)
		}
	}
	return values, units, matched
}

// UnitExtractor is the unit extraction stage
type UnitExtractor struct {
	logger *zap.Logger
}

// NewUnitExtractor creates the stage. A nil logger discards output.
func NewUnitExtractor(logger *zap.Logger) *UnitExtractor {
	return &UnitExtractor{logger: loggerOrNop(logger)}
}

// Name implements the pipeline stage interface
func (u *UnitExtractor) Name() string { return NameExtractUnits }

// Apply runs the stage
func (u *UnitExtractor) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	out, split, err := ExtractUnits(t)
	if err != nil {
		return nil, err
	}
	if len(split) > 0 {
		logger.WithContext(ctx, u.logger).Debug("split value/unit columns", zap.Strings("columns", split))
	}
	metrics.Add(metrics.ColumnsSplit, len(split))
	return out, nil
}
