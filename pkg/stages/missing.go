package stages

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// sentinels are compared against the trimmed, lower-cased cell. The empty
// string covers blank and whitespace-only cells.
var sentinels = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
	"?":    {},
	"-":    {},
	".":    {},
}

// IsSentinel reports whether s, trimmed and ignoring case, is a textual
// missing-value marker. The whole string must match.
func IsSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// TagMissing replaces every sentinel text cell with the missing marker and
// returns the number of cells replaced.
func TagMissing(t *table.Table) (*table.Table, int) {
	tagged := 0
	out := t.MapCells(func(c table.Cell) table.Cell {
		if s, ok := c.AsText(); ok && IsSentinel(s) {
			tagged++
			return table.Missing()
		}
		return c
	})
	return out, tagged
}

// MissingTagger is the missing-value tagging stage
type MissingTagger struct {
	logger *zap.Logger
}

// NewMissingTagger creates the stage. A nil logger discards output.
func NewMissingTagger(logger *zap.Logger) *MissingTagger {
	return &MissingTagger{logger: loggerOrNop(logger)}
}

// Name implements the pipeline stage interface
func (m *MissingTagger) Name() string { return NameTagMissing }

// Apply runs the stage
func (m *MissingTagger) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	out, tagged := TagMissing(t)
	logger.WithContext(ctx, m.logger).Debug("tagged missing values", zap.Int("cells", tagged))
	metrics.Add(metrics.CellsTaggedMissing, tagged)
	return out, nil
}
