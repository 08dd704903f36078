package tabclean

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabclean/internal/pipeline"
	"github.com/ajitpratap0/tabclean/pkg/config"
	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/observability"
	"github.com/ajitpratap0/tabclean/pkg/stages"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// Result is the outcome of Clean
type Result = pipeline.Result

// Report summarizes a Clean run
type Report = pipeline.Report

// Option configures a Cleaner
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider traces runs on tp instead of building a provider from
// the tracing config.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// Cleaner runs the five cleaning stages in order
type Cleaner struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
	shutdown observability.ShutdownFunc
}

// New creates a Cleaner. A nil cfg uses config.Default. A nil logger is
// built from cfg.Logging.
func New(cfg *config.Config, l *zap.Logger, opts ...Option) (*Cleaner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if l == nil {
		built, err := logger.New(cfg.Logging.ToLogger())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to build logger")
		}
		l = built
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	shutdown := observability.ShutdownFunc(func(context.Context) error { return nil })
	tp := o.tracerProvider
	if tp == nil {
		built, stop, err := observability.NewTracerProvider(cfg.Tracing.ToTracing())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to set up tracing")
		}
		tp, shutdown = built, stop
	}

	metrics.SetEnabled(cfg.Metrics.Enabled)

	p := pipeline.New(l,
		pipeline.WithSnapshots(cfg.Pipeline.KeepSnapshots),
		pipeline.WithTracer(observability.NewStageTracer(tp)),
	)
	p.AddStage(stages.NewNormalizer(l))
	p.AddStage(stages.NewMissingTagger(l))
	p.AddStage(stages.NewDecimalRepairer(l))
	p.AddStage(stages.NewUnitExtractor(l))
	p.AddStage(stages.NewUnitConverter(cfg.Pipeline.GetWorkers(), l))

	l.Debug("cleaner ready",
		zap.Strings("stages", p.Stages()),
		zap.Int("workers", cfg.Pipeline.GetWorkers()),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Bool("tracing", cfg.Tracing.Enabled))

	return &Cleaner{
		cfg:      cfg,
		logger:   l,
		pipeline: p,
		shutdown: shutdown,
	}, nil
}

// Stages returns the stage names in run order
func (c *Cleaner) Stages() []string {
	return c.pipeline.Stages()
}

// Clean runs every stage on t. t is not modified.
func (c *Cleaner) Clean(ctx context.Context, t *table.Table) (*Result, error) {
	return c.pipeline.Run(ctx, t)
}

// CleanRecords builds a text table from CSV-style records and cleans it
func (c *Cleaner) CleanRecords(ctx context.Context, header []string, rows [][]string) (*Result, error) {
	t, err := table.FromRecords(header, rows)
	if err != nil {
		return nil, err
	}
	return c.Clean(ctx, t)
}

// Close flushes pending spans of a tracer provider built by New
func (c *Cleaner) Close(ctx context.Context) error {
	if err := c.shutdown(ctx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to shut down tracing")
	}
	return nil
}
