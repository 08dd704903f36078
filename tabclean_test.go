package tabclean

import (
	"context"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ajitpratap0/tabclean/pkg/config"
	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/stages"
	"github.com/ajitpratap0/tabclean/pkg/table"
	"github.com/ajitpratap0/tabclean/pkg/testutil"
)

type CleanerTestSuite struct {
	testutil.CleanerSuite
}

func TestCleanerSuite(t *testing.T) {
	suite.Run(t, new(CleanerTestSuite))
}

var (
	sensorHeader = []string{" sensor ", "temperature", "pressure", "humidity", "length", "comment", "unused"}
	sensorRows   = [][]string{
		{"s1", "21,5 °C", "101,3 kPa", "45 %", "12.5 mm", "ok", ""},
		{"  ", " ", "", "\t", "", "  ", ""},
		{"s2", "70 °F", "1 bar", "NA", "N/A", "n/a", " "},
		{"s3", "300 K", "14.7 psi", "50 pct", "2 km", "needs recalibration", ""},
		{"s4", "?", "2 atm", "-", "3 lightyear", "fine", ""},
	}
)

func (s *CleanerTestSuite) newCleaner(cfg *config.Config) *Cleaner {
	c, err := New(cfg, s.Logger())
	s.Require().NoError(err)
	return c
}

func (s *CleanerTestSuite) TestEndToEnd() {
	cfg := config.Default()
	cfg.Pipeline.KeepSnapshots = true
	c := s.newCleaner(cfg)
	defer func() { s.NoError(c.Close(s.Context())) }()

	res, err := c.CleanRecords(s.Context(), sensorHeader, sensorRows)
	s.Require().NoError(err)

	t := s.T()
	out := res.Table
	s.Equal([]string{
		"sensor",
		"temperature_value", "temperature_unit",
		"pressure_value", "pressure_unit",
		"humidity_value", "humidity_unit",
		"length_value", "length_unit",
		"comment",
	}, out.Names())
	s.Equal(4, out.Rows())

	testutil.AssertCells(t, out, "sensor", "s1", "s2", "s3", "s4")
	testutil.AssertCells(t, out, "temperature_value", 294.65, 294.26111111111111, 300.0, nil)
	testutil.AssertCells(t, out, "temperature_unit", "K", "K", "K", nil)
	testutil.AssertCells(t, out, "pressure_value", 101300.0, 100000.0, 14.7*6894.757, 202650.0)
	testutil.AssertCells(t, out, "pressure_unit", "Pa", "Pa", "Pa", "Pa")
	testutil.AssertCells(t, out, "humidity_value", 0.45, nil, 0.5, nil)
	testutil.AssertCells(t, out, "humidity_unit", "1", nil, "1", nil)
	testutil.AssertCells(t, out, "length_value", 0.0125, nil, 2000.0, 3.0)
	testutil.AssertCells(t, out, "length_unit", "m", nil, "m", "lightyear")
	testutil.AssertCells(t, out, "comment", "ok", nil, "needs recalibration", "fine")

	s.Equal(1, res.Report.RowsDropped)
	s.Equal(1, res.Report.ColumnsDropped)
	s.Equal(4, res.Report.ColumnsAdded)

	repaired, ok := res.Snapshot(stages.NameRepairDecimals)
	s.Require().True(ok)
	testutil.AssertCells(t, repaired, "temperature", "21.5 °C", "70 °F", "300 K", nil)
}

func (s *CleanerTestSuite) TestCleanTwiceIsStable() {
	c := s.newCleaner(nil)
	first, err := c.CleanRecords(s.Context(), sensorHeader, sensorRows)
	s.Require().NoError(err)

	second, err := c.Clean(s.Context(), first.Table)
	s.Require().NoError(err)
	s.True(first.Table.Equal(second.Table))
}

func (s *CleanerTestSuite) TestLoadedConfig() {
	path := s.CreateTempFile("tabclean.yaml", []byte(`
logging:
  level: debug
pipeline:
  workers: 1
  keep_snapshots: false
metrics:
  enabled: false
`))
	cfg, err := config.Load(path)
	s.Require().NoError(err)

	c := s.newCleaner(cfg)
	res, err := c.CleanRecords(s.Context(), []string{"w"}, [][]string{{"500 g"}, {"2 kg"}})
	s.Require().NoError(err)
	s.Nil(res.Snapshots)
	testutil.AssertCells(s.T(), res.Table, "w_value", 0.5, 2.0)
}

func (s *CleanerTestSuite) TestInvalidConfig() {
	cfg := config.Default()
	cfg.Logging.Encoding = "xml"
	_, err := New(cfg, nil)
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeConfig))
}

func (s *CleanerTestSuite) TestNameCollisionFails() {
	c := s.newCleaner(nil)
	_, err := c.CleanRecords(s.Context(), []string{"w", "w_value"}, [][]string{{"3 kg", "x"}})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeValidation))
	s.Contains(err.Error(), stages.NameExtractUnits)
}

func TestCleanerStages(t *testing.T) {
	c, err := New(nil, testutil.TestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		stages.NameNormalize,
		stages.NameTagMissing,
		stages.NameRepairDecimals,
		stages.NameExtractUnits,
		stages.NameConvertUnits,
	}, c.Stages())
}

func TestCleanerTracesWithProvider(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	c, err := New(nil, testutil.TestLogger(t), WithTracerProvider(tp))
	require.NoError(t, err)

	ctx, cancel := testutil.TestContext(t)
	defer cancel()
	_, err = c.CleanRecords(ctx, []string{"t"}, [][]string{{"0 C"}})
	require.NoError(t, err)
	assert.Len(t, sr.Ended(), 6)
}

func TestCleanerRecordsMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = true
	c, err := New(cfg, testutil.TestLogger(t))
	require.NoError(t, err)
	defer metrics.SetEnabled(false)

	before := promtest.ToFloat64(metrics.ColumnsSplit)
	_, err = c.Clean(context.Background(), table.MustNew(table.TextColumn("d", "5 min", "2 h")))
	require.NoError(t, err)
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.ColumnsSplit))
}
