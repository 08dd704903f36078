// Package pipeline runs cleaning stages in order over an in-memory table.
//
// # Overview
//
// A Pipeline is an ordered list of Stages. Run hands the input table to the
// first stage and each stage's output to the next. Stages must not mutate
// their input, so every intermediate table stays valid after the run and can
// be kept as a snapshot for inspection.
//
// For every stage the runner:
//   - checks the context before starting
//   - opens a tracing span carrying the table shape
//   - records the stage duration in Prometheus
//   - logs start and finish through zap
//   - adds a StageReport to the run Report
//
// A failing stage stops the run. Its error is wrapped with the stage name and
// no partial table is returned.
//
// # Basic Usage
//
//	p := pipeline.New(logger, pipeline.WithSnapshots(true))
//	p.AddStage(stages.NewNormalizer(logger))
//	p.AddStage(stages.NewMissingTagger(logger))
//
//	res, err := p.Run(ctx, raw)
//	fmt.Println(res.Report.RowsDropped)
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/json"
	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/metrics"
	"github.com/ajitpratap0/tabclean/pkg/observability"
	"github.com/ajitpratap0/tabclean/pkg/table"
)

// Stage is one step of the pipeline. Apply must not modify its input.
type Stage interface {
	Name() string
	Apply(ctx context.Context, t *table.Table) (*table.Table, error)
}

// StageFunc adapts a plain function to a Stage
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, t *table.Table) (*table.Table, error)
}

// Name implements Stage
func (f StageFunc) Name() string { return f.StageName }

// Apply implements Stage
func (f StageFunc) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	return f.Fn(ctx, t)
}

// Result is the outcome of a successful run
type Result struct {
	Table  *table.Table
	Report *Report
	// Snapshots holds every stage output by stage name when snapshots are on
	Snapshots map[string]*table.Table
}

type snapshotLine struct {
	Stage string       `json:"stage"`
	Table *table.Table `json:"table"`
}

// SnapshotLines encodes the kept snapshots as JSON lines in run order, one
// {"stage": ..., "table": ...} object per stage. It returns nil when no
// snapshots were kept.
func (r *Result) SnapshotLines() ([]byte, error) {
	if len(r.Snapshots) == 0 {
		return nil, nil
	}
	lines := make([]interface{}, 0, len(r.Snapshots))
	for _, st := range r.Report.Stages {
		if t, ok := r.Snapshots[st.Name]; ok {
			lines = append(lines, snapshotLine{Stage: st.Name, Table: t})
		}
	}
	data, err := json.MarshalLines(lines...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to encode snapshots")
	}
	return data, nil
}

// Snapshot returns the output of the named stage, if it was kept
func (r *Result) Snapshot(stage string) (*table.Table, bool) {
	t, ok := r.Snapshots[stage]
	return t, ok
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithSnapshots keeps every stage output in the Result
func WithSnapshots(keep bool) Option {
	return func(p *Pipeline) { p.keepSnapshots = keep }
}

// WithTracer sets the tracer used for run and stage spans
func WithTracer(t *observability.StageTracer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.tracer = t
		}
	}
}

// Pipeline runs stages sequentially
type Pipeline struct {
	stages        []Stage
	keepSnapshots bool
	tracer        *observability.StageTracer
	logger        *zap.Logger
}

// New creates an empty pipeline. A nil logger discards output.
func New(l *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: logger.OrNop(l),
		tracer: observability.NewStageTracer(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddStage appends a stage. Stages run in the order they are added.
func (p *Pipeline) AddStage(s Stage) {
	p.stages = append(p.stages, s)
}

// Stages returns the stage names in run order
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run executes every stage on t and returns the final table with its report
func (p *Pipeline) Run(ctx context.Context, t *table.Table) (*Result, error) {
	if t == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "input table is nil")
	}

	runID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)
	ctx, runSpan := p.tracer.StartRun(ctx, runID, len(p.stages))
	defer runSpan.End()

	log := observability.WithTrace(ctx, logger.WithContext(ctx, p.logger))
	log.Info("starting pipeline",
		zap.Strings("stages", p.Stages()),
		zap.Int("rows", t.Rows()),
		zap.Int("columns", t.Width()))

	report := newReport(runID, t)
	res := &Result{Report: report}
	if p.keepSnapshots {
		res.Snapshots = make(map[string]*table.Table, len(p.stages))
	}

	current := t
	for _, stage := range p.stages {
		name := stage.Name()
		if err := ctx.Err(); err != nil {
			wrapped := errors.Wrap(err, errors.ErrorTypeCanceled, fmt.Sprintf("pipeline canceled before stage %s", name)).
				WithDetail("stage", name)
			runSpan.Fail(wrapped)
			return nil, wrapped
		}

		out, elapsed, err := p.runStage(ctx, stage, current)
		if err != nil {
			runSpan.Fail(err)
			return nil, err
		}

		report.add(StageReport{
			Name:       name,
			Duration:   elapsed,
			RowsIn:     current.Rows(),
			RowsOut:    out.Rows(),
			ColumnsIn:  current.Width(),
			ColumnsOut: out.Width(),
		})
		if p.keepSnapshots {
			res.Snapshots[name] = out
		}
		current = out
	}

	report.finish(current)
	res.Table = current

	log.Info("pipeline completed",
		zap.Duration("duration", report.Duration),
		zap.Int("rows", current.Rows()),
		zap.Int("columns", current.Width()),
		zap.Int("rows_dropped", report.RowsDropped),
		zap.Int("columns_dropped", report.ColumnsDropped),
		zap.Int("columns_added", report.ColumnsAdded))
	return res, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, in *table.Table) (*table.Table, time.Duration, error) {
	name := stage.Name()
	ctx = context.WithValue(ctx, logger.StageKey, name)
	ctx, span := p.tracer.StartStage(ctx, name, in.Rows(), in.Width())

	log := observability.WithTrace(ctx, logger.WithContext(ctx, p.logger))
	log.Debug("stage started")

	timer := metrics.NewTimer(name)
	out, err := stage.Apply(ctx, in)
	elapsed := timer.Observe()

	if err == nil && out == nil {
		err = errors.New(errors.ErrorTypeInternal, "stage returned no table")
	}
	if err != nil {
		wrapped := errors.Wrap(err, typeOf(err), fmt.Sprintf("stage %s failed", name)).
			WithDetail("stage", name)
		span.Fail(wrapped)
		span.End()
		log.Error("stage failed", zap.Error(err), zap.Duration("duration", elapsed))
		return nil, elapsed, wrapped
	}

	p.tracer.FinishStage(span, out.Rows(), out.Width())
	log.Debug("stage finished",
		zap.Duration("duration", elapsed),
		zap.Int("rows", out.Rows()),
		zap.Int("columns", out.Width()))
	return out, elapsed, nil
}

// typeOf keeps the type of a structured cause so callers can still branch
// on it after the stage name is added.
func typeOf(err error) errors.ErrorType {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Type
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.ErrorTypeCanceled
	}
	return errors.ErrorTypeInternal
}
