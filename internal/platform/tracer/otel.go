package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName labels every span emitted by the lifecycle engine.
const instrumentationName = "consentry/consent"

// OTelTracer adapts an OpenTelemetry tracer to the Tracer interface so the
// consent services never import OpenTelemetry directly.
type OTelTracer struct {
	tracer trace.Tracer
}

// OTelOption configures the OTelTracer.
type OTelOption func(*OTelTracer)

// WithOTelTracer injects a pre-configured OpenTelemetry tracer instead of
// the global provider.
func WithOTelTracer(t trace.Tracer) OTelOption {
	return func(o *OTelTracer) {
		o.tracer = t
	}
}

// NewOTel returns an OpenTelemetry-backed tracer. Without options it resolves
// the tracer lazily from the global provider, so it can be constructed before
// the provider is installed.
func NewOTel(opts ...OTelOption) *OTelTracer {
	t := &OTelTracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer(instrumentationName)
	}
	return t
}

// Start opens a span for one lifecycle operation.
func (t *OTelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	ctx, sp := t.tracer.Start(ctx, name, trace.WithAttributes(convertAttributes(attrs)...))
	return ctx, &otelSpan{sp: sp}
}

type otelSpan struct {
	sp trace.Span
}

// End closes the span. A non-nil err marks the span as failed and records
// the error event, which is how a refused lifecycle transition shows up in
// traces.
func (s *otelSpan) End(err error) {
	if err != nil {
		s.sp.RecordError(err)
		s.sp.SetStatus(codes.Error, err.Error())
	}
	s.sp.End()
}

func (s *otelSpan) SetAttributes(attrs ...Attribute) {
	s.sp.SetAttributes(convertAttributes(attrs)...)
}

func (s *otelSpan) AddEvent(name string, attrs ...Attribute) {
	s.sp.AddEvent(name, trace.WithAttributes(convertAttributes(attrs)...))
}

// convertAttributes maps the internal attribute pairs onto typed OTel
// key-values, stringifying anything outside the common scalar set.
func convertAttributes(attrs []Attribute) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		switch v := a.Value.(type) {
		case string:
			kvs = append(kvs, attribute.String(a.Key, v))
		case bool:
			kvs = append(kvs, attribute.Bool(a.Key, v))
		case int:
			kvs = append(kvs, attribute.Int(a.Key, v))
		case int64:
			kvs = append(kvs, attribute.Int64(a.Key, v))
		case float64:
			kvs = append(kvs, attribute.Float64(a.Key, v))
		default:
			kvs = append(kvs, attribute.String(a.Key, fmt.Sprintf("%v", v)))
		}
	}
	return kvs
}

var (
	_ Tracer = (*OTelTracer)(nil)
	_ Span   = (*otelSpan)(nil)
)
