package protocol

import (
	"bufio"
	"io"
	"log/slog"
	"time"
)

// Stream reads and writes whole packets over a caller-supplied byte
// stream. It starts in plain framing and switches both directions to
// compressed framing once a non-negative threshold is set, which is
// how a connection moves into compressed mode after negotiating it.
//
// Stream never opens or closes the underlying connection. Reads buffer
// ahead, so once a Stream is reading from rw nothing else should.
// ReadPacket must not be called from two goroutines at once, and
// neither must the write methods; one reader and one writer may run
// concurrently only if SetCompressionThreshold is not called meanwhile.
type Stream struct {
	w         io.Writer
	in        *countingReader
	threshold int
	level     int
	maxFrame  int
	logger    *slog.Logger
	observer  Observer
}

// NewStream creates a Stream over rw.
func NewStream(rw io.ReadWriter, opts ...StreamOption) *Stream {
	config := defaultStreamConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = defaultStreamConfig().Logger
	}
	if config.MaxFrameLength <= 0 {
		config.MaxFrameLength = DefaultMaxFrameLength
	}

	return &Stream{
		w:         rw,
		in:        &countingReader{r: bufio.NewReader(rw)},
		threshold: config.CompressionThreshold,
		level:     config.CompressionLevel,
		maxFrame:  config.MaxFrameLength,
		logger:    config.Logger,
		observer:  config.Observer,
	}
}

// CompressionThreshold returns the current threshold; negative means
// compression is off.
func (s *Stream) CompressionThreshold() int {
	return s.threshold
}

// Compressed reports whether the stream uses compressed framing.
func (s *Stream) Compressed() bool {
	return s.threshold >= 0
}

// SetCompressionThreshold switches framing for subsequent packets in
// both directions. A negative threshold turns compression off.
func (s *Stream) SetCompressionThreshold(threshold int) {
	if threshold < 0 {
		threshold = -1
	}
	if threshold == s.threshold {
		return
	}
	s.logger.Debug("compression threshold changed",
		"old", s.threshold,
		"new", threshold,
	)
	s.threshold = threshold
}

// ReadPacket reads the next packet. At a clean end of stream, before
// any byte of a new frame, it returns io.EOF. A stream that ends inside
// a frame returns ErrTruncatedInput wrapping io.ErrUnexpectedEOF.
func (s *Stream) ReadPacket() (Packet, error) {
	start := time.Now()
	s.in.n = 0

	var (
		pkt        Packet
		compressed bool
		err        error
	)
	if s.threshold >= 0 {
		pkt, compressed, err = readCompressed(s.in, s.maxFrame)
	} else {
		pkt, err = readFrame(s.in, s.maxFrame)
	}

	if err != nil && err != io.EOF {
		s.logger.Warn("packet read failed",
			"bytes", s.in.n,
			"compressed", s.threshold >= 0,
			"error", err,
		)
	} else if compressed {
		s.logger.Debug("inflated packet",
			"id", pkt.ID,
			"wire_bytes", s.in.n,
			"payload_bytes", len(pkt.Payload),
		)
	}
	if s.observer != nil {
		s.observer.ObserveRead(start, pkt, s.in.n, compressed, err)
	}
	return pkt, err
}

// WritePacket frames id and payload in the current mode and writes the
// frame in a single Write call. Writer errors are returned unchanged.
func (s *Stream) WritePacket(id int32, payload []byte) error {
	start := time.Now()

	var (
		frame      []byte
		compressed bool
		err        error
	)
	if s.threshold >= 0 {
		frame, compressed, err = writeCompressed(id, payload, s.threshold, s.level)
	} else {
		frame = WriteFramed(id, payload)
	}

	n := 0
	if err == nil {
		n, err = s.w.Write(frame)
	}
	if err != nil {
		s.logger.Warn("packet write failed",
			"id", id,
			"bytes", n,
			"error", err,
		)
	}
	if s.observer != nil {
		s.observer.ObserveWrite(start, id, n, compressed, err)
	}
	return err
}

// WriteBuilder consumes b and writes its packet with the given id.
func (s *Stream) WriteBuilder(id int32, b *Builder) error {
	payload, err := b.Payload()
	if err != nil {
		return err
	}
	return s.WritePacket(id, payload)
}

// countingReader counts bytes consumed from a buffered reader.
type countingReader struct {
	r *bufio.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}
