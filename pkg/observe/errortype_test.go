package observe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"testing"

	"github.com/vango-dev/blockwire/pkg/protocol"
)

func TestErrorType(t *testing.T) {
	_, truncated := protocol.ReadFrame(bytes.NewReader([]byte{0x05, 0x01}))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"malformed_varint", protocol.ErrMalformedVarInt, "malformed_varint"},
		{"truncated_frame", truncated, "truncated"},
		{"mismatch_wrapping_eof", fmt.Errorf("%w: %w", protocol.ErrDecompressionMismatch, io.ErrUnexpectedEOF), "decompression_mismatch"},
		{"too_large", fmt.Errorf("%w: length 9", protocol.ErrFrameTooLarge), "frame_too_large"},
		{"invalid_utf8", protocol.ErrInvalidUTF8, "invalid_utf8"},
		{"disabled", protocol.ErrCompressionDisabled, "compression_disabled"},
		{"consumed", protocol.ErrBuilderConsumed, "builder_consumed"},
		{"deadline", fmt.Errorf("read: %w", os.ErrDeadlineExceeded), "timeout"},
		{"closed", net.ErrClosed, "closed"},
		{"closed_pipe", io.ErrClosedPipe, "closed"},
		{"other", errors.New("connection reset by peer"), "io"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorType(tc.err); got != tc.want {
				t.Errorf("ErrorType(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}
