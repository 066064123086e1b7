package observe

import (
	"context"
	"time"

	"github.com/vango-dev/blockwire/pkg/protocol"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "blockwire"

// Span names.
const (
	SpanRead  = "blockwire.read"
	SpanWrite = "blockwire.write"
)

// TracerConfig configures the OpenTelemetry packet observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "blockwire").
	TracerName string

	// Provider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider()
	Provider trace.TracerProvider

	// Context is the parent context of every span, typically one
	// carrying the span of the connection (default: context.Background()).
	Context context.Context
}

// TracerOption configures the OpenTelemetry packet observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = provider
	}
}

// WithContext sets the parent context for packet spans.
func WithContext(ctx context.Context) TracerOption {
	return func(c *TracerConfig) {
		c.Context = ctx
	}
}

// defaultTracerConfig returns the default tracing configuration.
func defaultTracerConfig() TracerConfig {
	return TracerConfig{
		TracerName: defaultTracerName,
		Provider:   nil,
		Context:    context.Background(),
	}
}

// Tracer is a protocol.Observer that emits one span per packet.
//
// Spans start at the time the read or write began and end when the
// observer is called, so they cover the blocking I/O. Failed packets
// record the error and set codes.Error.
//
// Example:
//
//	t := observe.NewTracer(observe.WithContext(connCtx))
//	s := protocol.NewStream(conn, protocol.WithObserver(
//	    protocol.MultiObserver(metrics, t),
//	))
type Tracer struct {
	tracer trace.Tracer
	ctx    context.Context
}

var _ protocol.Observer = (*Tracer)(nil)

// NewTracer creates a tracing observer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := defaultTracerConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	return &Tracer{
		tracer: config.Provider.Tracer(config.TracerName),
		ctx:    config.Context,
	}
}

// ObserveRead implements protocol.Observer.
func (t *Tracer) ObserveRead(start time.Time, pkt protocol.Packet, wireBytes int, compressed bool, err error) {
	if endOfStream(wireBytes, err) {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Int("blockwire.wire_bytes", wireBytes),
		attribute.Bool("blockwire.compressed", compressed),
	}
	if err == nil {
		attrs = append(attrs,
			attribute.Int("blockwire.packet_id", int(pkt.ID)),
			attribute.Int("blockwire.payload_bytes", len(pkt.Payload)),
		)
	}
	t.span(SpanRead, start, attrs, err)
}

// ObserveWrite implements protocol.Observer.
func (t *Tracer) ObserveWrite(start time.Time, id int32, wireBytes int, compressed bool, err error) {
	t.span(SpanWrite, start, []attribute.KeyValue{
		attribute.Int("blockwire.packet_id", int(id)),
		attribute.Int("blockwire.wire_bytes", wireBytes),
		attribute.Bool("blockwire.compressed", compressed),
	}, err)
}

func (t *Tracer) span(name string, start time.Time, attrs []attribute.KeyValue, err error) {
	_, span := t.tracer.Start(t.ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("blockwire.error_type", ErrorType(err)))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
