package protocol

import (
	"io"
	"log/slog"
)

// StreamConfig configures a Stream.
type StreamConfig struct {
	// CompressionThreshold selects the framing mode. Negative means plain
	// frames; zero or more means compressed frames, deflating inner
	// blocks of at least this many bytes (default: -1).
	CompressionThreshold int

	// CompressionLevel is the zlib level used when deflating
	// (default: DefaultCompression).
	CompressionLevel int

	// MaxFrameLength caps the length prefix accepted on read
	// (default: DefaultMaxFrameLength).
	MaxFrameLength int

	// Logger receives debug and warning events (default: discards).
	Logger *slog.Logger

	// Observer is notified after every packet read and write
	// (default: none).
	Observer Observer
}

// StreamOption configures a Stream.
type StreamOption func(*StreamConfig)

// WithCompressionThreshold sets the initial compression threshold.
func WithCompressionThreshold(threshold int) StreamOption {
	return func(c *StreamConfig) {
		c.CompressionThreshold = threshold
	}
}

// WithCompressionLevel sets the zlib compression level.
func WithCompressionLevel(level int) StreamOption {
	return func(c *StreamConfig) {
		c.CompressionLevel = level
	}
}

// WithMaxFrameLength sets the largest frame accepted on read.
func WithMaxFrameLength(n int) StreamOption {
	return func(c *StreamConfig) {
		c.MaxFrameLength = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) StreamOption {
	return func(c *StreamConfig) {
		c.Logger = logger
	}
}

// WithObserver sets the packet observer. Use MultiObserver to attach
// more than one.
func WithObserver(o Observer) StreamOption {
	return func(c *StreamConfig) {
		c.Observer = o
	}
}

// defaultStreamConfig returns the default stream configuration.
func defaultStreamConfig() StreamConfig {
	return StreamConfig{
		CompressionThreshold: -1,
		CompressionLevel:     DefaultCompression,
		MaxFrameLength:       DefaultMaxFrameLength,
		Logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer:             nil,
	}
}
