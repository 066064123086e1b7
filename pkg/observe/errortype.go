package observe

import (
	"errors"
	"io"
	"net"
	"os"

	"github.com/vango-dev/blockwire/pkg/protocol"
)

// errorTypes maps codec errors to their label, checked in order.
var errorTypes = []struct {
	err   error
	label string
}{
	{protocol.ErrMalformedVarInt, "malformed_varint"},
	{protocol.ErrDecompressionMismatch, "decompression_mismatch"},
	{protocol.ErrFrameTooLarge, "frame_too_large"},
	{protocol.ErrMalformedFrame, "malformed_frame"},
	{protocol.ErrInvalidUTF8, "invalid_utf8"},
	{protocol.ErrInvalidElement, "invalid_element"},
	{protocol.ErrCompressionDisabled, "compression_disabled"},
	{protocol.ErrBuilderConsumed, "builder_consumed"},
	{protocol.ErrTruncatedInput, "truncated"},
}

// ErrorType returns a low-cardinality category for err, for use as a
// metric label or span attribute. It returns "" for a nil error.
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	for _, et := range errorTypes {
		if errors.Is(err, et.err) {
			return et.label
		}
	}

	switch {
	case errors.Is(err, os.ErrDeadlineExceeded):
		return "timeout"
	case errors.Is(err, net.ErrClosed), errors.Is(err, io.ErrClosedPipe):
		return "closed"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "io"
}

// endOfStream reports a read that found the stream cleanly closed
// before any byte of a new frame.
func endOfStream(wireBytes int, err error) bool {
	return wireBytes == 0 && errors.Is(err, io.EOF)
}
