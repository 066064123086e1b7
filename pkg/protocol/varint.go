package protocol

import (
	"errors"
	"fmt"
	"io"
)

// MaxVarIntLen is the maximum number of bytes a VarInt can occupy.
// A 32-bit value needs at most 5 groups of 7 bits.
const MaxVarIntLen = 5

// EncodeVarInt encodes v as a VarInt and returns the encoded bytes.
// The value is treated as an unsigned 32-bit pattern, so negative
// numbers always take the full 5 bytes.
func EncodeVarInt(v int32) []byte {
	return AppendVarInt(make([]byte, 0, VarIntLen(v)), v)
}

// AppendVarInt appends the VarInt encoding of v to dst and returns the
// extended slice.
func AppendVarInt(dst []byte, v int32) []byte {
	uv := uint32(v)
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// PutVarInt encodes v into buf and returns the number of bytes written.
// buf must have at least MaxVarIntLen bytes available.
func PutVarInt(buf []byte, v int32) int {
	uv := uint32(v)
	i := 0
	for uv >= 0x80 {
		buf[i] = byte(uv) | 0x80
		uv >>= 7
		i++
	}
	buf[i] = byte(uv)
	return i + 1
}

// VarIntLen returns the number of bytes needed to encode v as a VarInt.
func VarIntLen(v int32) int {
	uv := uint32(v)
	n := 1
	for uv >= 0x80 {
		n++
		uv >>= 7
	}
	return n
}

// varIntAccumulator holds the decode state shared by the buffer and
// stream decoders so both apply the same bit layout and bounds.
type varIntAccumulator struct {
	value uint32
	n     int
}

// add folds one encoded byte into the value. It reports whether the
// VarInt is complete.
func (a *varIntAccumulator) add(b byte) (bool, error) {
	a.value |= uint32(b&0x7F) << (7 * a.n)
	a.n++
	if b&0x80 == 0 {
		return true, nil
	}
	if a.n >= MaxVarIntLen {
		return false, ErrMalformedVarInt
	}
	return false, nil
}

// DecodeVarInt decodes a VarInt from the start of buf.
// Returns the value and the number of bytes consumed.
// Returns ErrTruncatedInput if buf ends before the terminating byte and
// ErrMalformedVarInt if the continuation chain runs past MaxVarIntLen.
func DecodeVarInt(buf []byte) (int32, int, error) {
	var acc varIntAccumulator
	for _, b := range buf {
		done, err := acc.add(b)
		if err != nil {
			return 0, 0, err
		}
		if done {
			return int32(acc.value), acc.n, nil
		}
	}
	return 0, 0, ErrTruncatedInput
}

// ReadVarInt reads a VarInt from r one byte at a time.
// If r implements io.ByteReader it is used directly, otherwise single
// byte reads are issued so no byte past the VarInt is consumed.
//
// A reader that ends before the terminating byte yields
// ErrTruncatedInput. The io error stays in the chain: io.EOF when no
// byte was read, io.ErrUnexpectedEOF when the VarInt was cut short.
func ReadVarInt(r io.Reader) (int32, error) {
	v, _, err := readVarInt(r)
	return v, err
}

// readVarInt also returns the number of bytes consumed.
func readVarInt(r io.Reader) (int32, int, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &singleByteReader{r: r}
	}

	var acc varIntAccumulator
	for {
		b, err := br.ReadByte()
		if err != nil {
			if acc.n > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, acc.n, truncated(err)
		}
		done, err := acc.add(b)
		if err != nil {
			return 0, acc.n, err
		}
		if done {
			return int32(acc.value), acc.n, nil
		}
	}
}

// singleByteReader adapts an io.Reader to io.ByteReader without
// buffering ahead.
type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}

// truncated maps end-of-stream conditions to ErrTruncatedInput while
// keeping the io error in the chain. Other errors pass through as-is.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncatedInput, err)
	}
	return err
}
