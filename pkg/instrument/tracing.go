package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rendertree-dev/rendertree/pkg/rendertree"
)

// Default tracer name for builder spans.
const defaultTracerName = "rendertree"

// TracerConfig configures the OpenTelemetry profiler.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "rendertree").
	TracerName string

	// Context is the root context spans descend from.
	// Default: context.Background().
	Context context.Context

	// Attributes are added to every span.
	Attributes []attribute.KeyValue
}

// TracerOption configures the OpenTelemetry profiler.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithContext sets the root context for spans.
func WithContext(ctx context.Context) TracerOption {
	return func(c *TracerConfig) {
		c.Context = ctx
	}
}

// WithAttributes sets attributes added to every span.
func WithAttributes(attrs ...attribute.KeyValue) TracerOption {
	return func(c *TracerConfig) {
		c.Attributes = attrs
	}
}

func defaultTracerConfig() TracerConfig {
	return TracerConfig{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
}

// Tracer emits one OpenTelemetry span per builder operation. Operations nest
// strictly, so spans parent onto the innermost open span.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it in
// main() before building trees:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//	rendertree.SetProfiler(instrument.NewTracer())
//
// It implements rendertree.Profiler and must only be used from the builder's
// goroutine.
type Tracer struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
	root   context.Context
	stack  []spanFrame
}

type spanFrame struct {
	ctx  context.Context
	span trace.Span
}

// NewTracer creates an OpenTelemetry profiler using the global tracer
// provider.
func NewTracer(opts ...TracerOption) *Tracer {
	config := defaultTracerConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Tracer{
		tracer: otel.Tracer(config.TracerName),
		attrs:  config.Attributes,
		root:   config.Context,
	}
}

// OperationStart opens a span for the operation, parented onto the innermost
// open span.
func (t *Tracer) OperationStart(name string) {
	parent := t.root
	if n := len(t.stack); n > 0 {
		parent = t.stack[n-1].ctx
	}
	ctx, span := t.tracer.Start(parent, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(t.attrs...),
	)
	t.stack = append(t.stack, spanFrame{ctx: ctx, span: span})
}

// OperationEnd closes the innermost open span.
func (t *Tracer) OperationEnd(name string) {
	if len(t.stack) == 0 {
		return
	}
	top := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	top.span.End()
}

// Depth returns the number of open spans.
func (t *Tracer) Depth() int {
	return len(t.stack)
}

// Multi fans operation events out to several profilers in order.
func Multi(profilers ...rendertree.Profiler) rendertree.Profiler {
	return multiProfiler(profilers)
}

type multiProfiler []rendertree.Profiler

func (m multiProfiler) OperationStart(name string) {
	for _, p := range m {
		p.OperationStart(name)
	}
}

func (m multiProfiler) OperationEnd(name string) {
	for _, p := range m {
		p.OperationEnd(name)
	}
}
