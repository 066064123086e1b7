// Package observe provides protocol.Observer implementations that export
// packet traffic of a protocol.Stream.
//
// # Prometheus Metrics
//
// Metrics counts packets, wire bytes, deflated packets and failures per
// direction, and records read/write duration:
//
//	m := observe.NewMetrics(
//	    observe.WithNamespace("proxy"),
//	    observe.WithRegistry(reg),
//	)
//
// # OpenTelemetry
//
// Tracer emits a "blockwire.read" or "blockwire.write" span per packet
// using the global tracer provider unless one is given:
//
//	t := observe.NewTracer(observe.WithTracerName("proxy"))
//
// Both can be attached to one stream:
//
//	s := protocol.NewStream(conn, protocol.WithObserver(
//	    protocol.MultiObserver(m, t),
//	))
//
// A read that finds the stream cleanly closed is not a packet and is not
// recorded by either observer.
package observe
