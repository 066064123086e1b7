package protocol

import (
	"errors"
	"fmt"
	"io"
)

// Packet is a decoded packet: its id and the payload that followed it.
type Packet struct {
	ID      int32
	Payload []byte
}

// WriteUnframed returns VarInt(id) followed by payload, with no outer
// length prefix. It is the inner block beneath both framing modes.
func WriteUnframed(id int32, payload []byte) []byte {
	buf := make([]byte, 0, VarIntLen(id)+len(payload))
	buf = AppendVarInt(buf, id)
	return append(buf, payload...)
}

// WriteFramed returns a plain packet frame.
//
// It does not enforce DefaultMaxFrameLength: a frame whose ID and
// payload exceed it is written, but ReadFrame rejects it with
// ErrFrameTooLarge.
//
// Wire format:
//
//	┌──────────────────┬──────────────┬──────────────────┐
//	│ Length (VarInt)  │ ID (VarInt)  │ Payload          │
//	└──────────────────┴──────────────┴──────────────────┘
//
// Length counts the ID and payload bytes.
func WriteFramed(id int32, payload []byte) []byte {
	innerLen := VarIntLen(id) + len(payload)
	buf := make([]byte, 0, VarIntLen(int32(innerLen))+innerLen)
	buf = AppendVarInt(buf, int32(innerLen))
	buf = AppendVarInt(buf, id)
	return append(buf, payload...)
}

// WriteFrame writes a plain packet frame to w in a single Write call.
// Writer errors are returned unchanged.
func WriteFrame(w io.Writer, id int32, payload []byte) error {
	_, err := w.Write(WriteFramed(id, payload))
	return err
}

// ReadLengthPrefixed reads a VarInt byte count n from r followed by
// exactly n bytes. It returns ErrMalformedFrame for a negative count and
// ErrFrameTooLarge for a count above DefaultMaxFrameLength.
//
// If r is already at its end, the error is io.EOF itself. If r ends
// after any byte of the block, the error is ErrTruncatedInput wrapping
// io.ErrUnexpectedEOF, so it never satisfies errors.Is(err, io.EOF).
func ReadLengthPrefixed(r io.Reader) ([]byte, error) {
	return readLengthPrefixed(r, DefaultMaxFrameLength)
}

func readLengthPrefixed(r io.Reader, limit int) ([]byte, error) {
	length, n, err := readVarInt(r)
	if err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrMalformedFrame, length)
	}
	if int(length) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, length, limit)
	}

	block := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, block); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, truncated(err)
		}
	}
	return block, nil
}

// SplitID parses the leading VarInt packet id off an unframed block.
// The returned payload aliases inner.
func SplitID(inner []byte) (int32, []byte, error) {
	id, n, err := DecodeVarInt(inner)
	if err != nil {
		return 0, nil, err
	}
	return id, inner[n:], nil
}

// ReadFrame reads one plain packet frame from r.
func ReadFrame(r io.Reader) (Packet, error) {
	return readFrame(r, DefaultMaxFrameLength)
}

// readFrame is ReadFrame with a configurable length limit.
func readFrame(r io.Reader, limit int) (Packet, error) {
	block, err := readLengthPrefixed(r, limit)
	if err != nil {
		return Packet{}, err
	}
	id, payload, err := SplitID(block)
	if err != nil {
		return Packet{}, err
	}
	return Packet{ID: id, Payload: payload}, nil
}
