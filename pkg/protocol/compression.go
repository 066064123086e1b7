package protocol

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compression levels accepted by WriteCompressedLevel and
// WithCompressionLevel. They are the zlib levels.
const (
	NoCompression      = zlib.NoCompression
	BestSpeed          = zlib.BestSpeed
	BestCompression    = zlib.BestCompression
	DefaultCompression = zlib.DefaultCompression
	HuffmanOnly        = zlib.HuffmanOnly
)

// WriteCompressed returns a compressed packet frame.
//
// Wire format:
//
//	┌──────────────────┬─────────────────────────┬──────────────────┐
//	│ Length (VarInt)  │ Declared length (VarInt)│ Body             │
//	└──────────────────┴─────────────────────────┴──────────────────┘
//
// The inner block VarInt(id)+payload is deflated when its length is at
// least threshold; the declared length is then the inner block's size.
// Smaller blocks are stored as-is with a declared length of 0.
// A negative threshold returns ErrCompressionDisabled.
//
// As with WriteFramed, the frame is not checked against
// DefaultMaxFrameLength; ReadCompressed rejects an oversized one.
func WriteCompressed(id int32, payload []byte, threshold int) ([]byte, error) {
	return WriteCompressedLevel(id, payload, threshold, DefaultCompression)
}

// WriteCompressedLevel is WriteCompressed with an explicit zlib level.
func WriteCompressedLevel(id int32, payload []byte, threshold, level int) ([]byte, error) {
	frame, _, err := writeCompressed(id, payload, threshold, level)
	return frame, err
}

// writeCompressed also reports whether the body was deflated.
func writeCompressed(id int32, payload []byte, threshold, level int) ([]byte, bool, error) {
	if threshold < 0 {
		return nil, false, ErrCompressionDisabled
	}

	inner := WriteUnframed(id, payload)
	body := inner
	declared := int32(0)
	compressed := false

	if len(inner) >= threshold {
		deflated, err := deflate(inner, level)
		if err != nil {
			return nil, false, err
		}
		body = deflated
		declared = int32(len(inner))
		compressed = true
	}

	frameLen := VarIntLen(declared) + len(body)
	buf := make([]byte, 0, VarIntLen(int32(frameLen))+frameLen)
	buf = AppendVarInt(buf, int32(frameLen))
	buf = AppendVarInt(buf, declared)
	buf = append(buf, body...)
	return buf, compressed, nil
}

// ReadCompressed reads one compressed packet frame from r and returns
// the packet id and payload.
//
// A declared length of 0 means the body is the uncompressed inner
// block. Otherwise the body is inflated and must produce exactly the
// declared number of bytes, or ErrDecompressionMismatch is returned.
func ReadCompressed(r io.Reader) (int32, []byte, error) {
	pkt, _, err := readCompressed(r, DefaultMaxFrameLength)
	if err != nil {
		return 0, nil, err
	}
	return pkt.ID, pkt.Payload, nil
}

// readCompressed also reports whether the frame body was deflated.
func readCompressed(r io.Reader, limit int) (Packet, bool, error) {
	block, err := readLengthPrefixed(r, limit)
	if err != nil {
		return Packet{}, false, err
	}

	declared, n, err := DecodeVarInt(block)
	if err != nil {
		return Packet{}, false, err
	}
	body := block[n:]

	inner := body
	if declared != 0 {
		inner, err = inflate(body, declared, limit)
		if err != nil {
			return Packet{}, true, err
		}
	}

	id, payload, err := SplitID(inner)
	if err != nil {
		return Packet{}, declared != 0, err
	}
	return Packet{ID: id, Payload: payload}, declared != 0, nil
}

func deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("protocol: zlib writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("protocol: deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("protocol: deflate: %w", err)
	}
	return buf.Bytes(), nil
}

// inflate decompresses body, reading at most one byte past declared so
// an oversized stream is detected without being fully expanded.
func inflate(body []byte, declared int32, limit int) ([]byte, error) {
	if declared < 0 || int(declared) > limit {
		return nil, fmt.Errorf("%w: declared length %d out of range", ErrDecompressionMismatch, declared)
	}

	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompressionMismatch, err)
	}
	defer zr.Close()

	out := bytes.NewBuffer(make([]byte, 0, declared))
	if _, err := io.Copy(out, io.LimitReader(zr, int64(declared)+1)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompressionMismatch, err)
	}
	if out.Len() != int(declared) {
		return nil, fmt.Errorf("%w: inflated %d bytes, declared %d", ErrDecompressionMismatch, out.Len(), declared)
	}
	return out.Bytes(), nil
}
