package observe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/vango-dev/blockwire/pkg/protocol"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	noop.Span
	name   string
	start  time.Time
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	config := trace.NewSpanStartConfig(opts...)
	span := &recordedSpan{
		name:  name,
		start: config.Timestamp(),
		attrs: make(map[attribute.Key]attribute.Value),
	}
	span.SetAttributes(config.Attributes()...)
	r.spans = append(r.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type recordingProvider struct {
	noop.TracerProvider
	name   string
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	p.name = name
	return p.tracer
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{tracer: &recordingTracer{}}
}

func TestTracer_SpanPerPacket(t *testing.T) {
	provider := newRecordingProvider()
	tr := NewTracer(WithTracerProvider(provider), WithTracerName("proxy"))

	if provider.name != "proxy" {
		t.Fatalf("tracer name = %q, want %q", provider.name, "proxy")
	}

	start := time.Now().Add(-time.Second)
	tr.ObserveWrite(start, 0x05, 7, false, nil)
	tr.ObserveRead(start, protocol.Packet{ID: 0x05, Payload: []byte("abc")}, 7, true, nil)

	spans := provider.tracer.spans
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	write, read := spans[0], spans[1]
	if write.name != SpanWrite || read.name != SpanRead {
		t.Errorf("span names = %q, %q", write.name, read.name)
	}
	for _, s := range spans {
		if !s.ended {
			t.Errorf("span %s not ended", s.name)
		}
		if !s.start.Equal(start) {
			t.Errorf("span %s start = %v, want %v", s.name, s.start, start)
		}
		if s.status != codes.Ok {
			t.Errorf("span %s status = %v, want Ok", s.name, s.status)
		}
		if got := s.attrs["blockwire.packet_id"].AsInt64(); got != 5 {
			t.Errorf("span %s packet_id = %d, want 5", s.name, got)
		}
		if got := s.attrs["blockwire.wire_bytes"].AsInt64(); got != 7 {
			t.Errorf("span %s wire_bytes = %d, want 7", s.name, got)
		}
	}
	if !read.attrs["blockwire.compressed"].AsBool() {
		t.Error("read span compressed = false, want true")
	}
	if got := read.attrs["blockwire.payload_bytes"].AsInt64(); got != 3 {
		t.Errorf("read span payload_bytes = %d, want 3", got)
	}
}

func TestTracer_RecordsError(t *testing.T) {
	provider := newRecordingProvider()
	tr := NewTracer(WithTracerProvider(provider))

	_, err := protocol.ReadFrame(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80}))
	tr.ObserveRead(time.Now(), protocol.Packet{}, 5, false, err)

	if len(provider.tracer.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(provider.tracer.spans))
	}
	span := provider.tracer.spans[0]
	if span.status != codes.Error {
		t.Errorf("status = %v, want Error", span.status)
	}
	if len(span.errs) != 1 || !errors.Is(span.errs[0], protocol.ErrMalformedVarInt) {
		t.Errorf("recorded errors = %v", span.errs)
	}
	if got := span.attrs["blockwire.error_type"].AsString(); got != "malformed_varint" {
		t.Errorf("error_type = %q, want malformed_varint", got)
	}
}

func TestTracer_StreamIntegration(t *testing.T) {
	provider := newRecordingProvider()
	tr := NewTracer(WithTracerProvider(provider), WithContext(context.Background()))

	var conn bytes.Buffer
	s := protocol.NewStream(&conn, protocol.WithObserver(tr))
	if err := s.WritePacket(0x01, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadPacket(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadPacket(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadPacket() at end error = %v, want io.EOF", err)
	}

	// The clean end of stream produces no span.
	if len(provider.tracer.spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(provider.tracer.spans))
	}
}

func TestTracerConfigDefaults(t *testing.T) {
	config := defaultTracerConfig()
	if config.TracerName != "blockwire" {
		t.Errorf("TracerName = %q, want %q", config.TracerName, "blockwire")
	}
	if config.Context == nil {
		t.Error("Context should default to context.Background()")
	}

	// Falls back to the global provider without panicking.
	tr := NewTracer()
	tr.ObserveWrite(time.Now(), 0x01, 2, false, nil)
}
