// Package observability provides tracing for the cleaning pipeline. Every
// stage run is wrapped in an OpenTelemetry span carrying the table shape
// before and after the stage.
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the tracer name used for pipeline spans
const InstrumentationName = "github.com/ajitpratap0/tabclean"

// Span wraps a trace span and batches its attributes until End
type Span struct {
	span       trace.Span
	startTime  time.Time
	attributes []attribute.KeyValue
}

// SetAttribute adds an attribute to the span
func (s *Span) SetAttribute(key string, value interface{}) {
	var attr attribute.KeyValue

	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	case []string:
		attr = attribute.StringSlice(key, v)
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}

	s.attributes = append(s.attributes, attr)
}

// Fail records err on the span and marks it as errored
func (s *Span) Fail(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// Duration returns the time since the span started
func (s *Span) Duration() time.Duration {
	return time.Since(s.startTime)
}

// End flushes the batched attributes and ends the span
func (s *Span) End() {
	if len(s.attributes) > 0 {
		s.span.SetAttributes(s.attributes...)
	}
	s.span.End()
}

// StageTracer starts spans for pipeline stages
type StageTracer struct {
	tracer trace.Tracer
}

// NewStageTracer creates a stage tracer on tp. A nil provider uses the
// global one, which is a no-op until Init installs an SDK provider.
func NewStageTracer(tp trace.TracerProvider) *StageTracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &StageTracer{tracer: tp.Tracer(InstrumentationName)}
}

// StartRun starts the root span of a pipeline run
func (st *StageTracer) StartRun(ctx context.Context, runID string, stages int) (context.Context, *Span) {
	ctx, span := st.start(ctx, "tabclean.run")
	span.SetAttribute("run.id", runID)
	span.SetAttribute("run.stages", stages)
	return ctx, span
}

// StartStage starts a span for one stage, recording the input shape
func (st *StageTracer) StartStage(ctx context.Context, stage string, rows, columns int) (context.Context, *Span) {
	ctx, span := st.start(ctx, "tabclean.stage."+stage)
	span.SetAttribute("stage.name", stage)
	span.SetAttribute("table.rows_in", rows)
	span.SetAttribute("table.columns_in", columns)
	return ctx, span
}

// FinishStage records the output shape and ends the span
func (st *StageTracer) FinishStage(span *Span, rows, columns int) {
	span.SetAttribute("table.rows_out", rows)
	span.SetAttribute("table.columns_out", columns)
	span.span.SetStatus(codes.Ok, "")
	span.End()
}

func (st *StageTracer) start(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := st.tracer.Start(ctx, name)
	return ctx, &Span{
		span:      span,
		startTime: time.Now(),
	}
}
