package protocol

import (
	"math"
	"unicode/utf8"
)

// Decoder is a binary decoder that reads wire primitives from a byte
// buffer. It is the read-side mirror of Encoder.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new decoder from the given byte slice.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF returns true if all bytes have been read.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// Position returns the current read position.
func (d *Decoder) Position() int {
	return d.pos
}

// Rest returns the unread bytes without copying and advances to the end.
func (d *Decoder) Rest() []byte {
	b := d.buf[d.pos:]
	d.pos = len(d.buf)
	return b
}

// Skip advances the position by n bytes.
func (d *Decoder) Skip(n int) error {
	if n < 0 || n > d.Remaining() {
		return ErrTruncatedInput
	}
	d.pos += n
	return nil
}

// ReadBytes reads exactly n bytes and returns them.
// The returned slice references the decoder's buffer; do not modify.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, ErrTruncatedInput
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// ReadUint8 reads an unsigned byte.
func (d *Decoder) ReadUint8() (uint8, error) {
	if d.pos >= len(d.buf) {
		return 0, ErrTruncatedInput
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadInt8 reads a signed byte.
func (d *Decoder) ReadInt8() (int8, error) {
	b, err := d.ReadUint8()
	return int8(b), err
}

// ReadVarInt reads a VarInt.
func (d *Decoder) ReadVarInt() (int32, error) {
	v, n, err := DecodeVarInt(d.buf[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n
	return v, nil
}

// readLength reads a VarInt length prefix and checks it against the
// remaining buffer and limit.
func (d *Decoder) readLength(limit int) (int, error) {
	length, err := d.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, ErrMalformedFrame
	}
	// Allocation limit check: prevent DoS via huge length prefix
	if int(length) > limit {
		return 0, ErrFrameTooLarge
	}
	if int(length) > d.Remaining() {
		return 0, ErrTruncatedInput
	}
	return int(length), nil
}

// ReadString reads a length-prefixed UTF-8 string.
// Returns ErrFrameTooLarge if the string exceeds DefaultMaxStringLength
// and ErrInvalidUTF8 if the bytes are not valid UTF-8.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.readLength(DefaultMaxStringLength)
	if err != nil {
		return "", err
	}
	raw := d.buf[d.pos : d.pos+n]
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	d.pos += n
	return string(raw), nil
}

// ReadLenBytes reads length-prefixed bytes.
// Returns a copy of the bytes (safe to retain).
func (d *Decoder) ReadLenBytes() ([]byte, error) {
	n, err := d.readLength(DefaultMaxFrameLength)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, d.buf[d.pos:d.pos+n])
	d.pos += n
	return b, nil
}

// ReadBool reads a boolean (single byte: 0x00=false, anything else true).
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadUint8()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if d.pos+2 > len(d.buf) {
		return 0, ErrTruncatedInput
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadUint32 reads a uint32 in big-endian byte order.
func (d *Decoder) ReadUint32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, ErrTruncatedInput
	}
	v := uint32(d.buf[d.pos])<<24 | uint32(d.buf[d.pos+1])<<16 |
		uint32(d.buf[d.pos+2])<<8 | uint32(d.buf[d.pos+3])
	d.pos += 4
	return v, nil
}

// ReadUint64 reads a uint64 in big-endian byte order.
func (d *Decoder) ReadUint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, ErrTruncatedInput
	}
	v := uint64(d.buf[d.pos])<<56 | uint64(d.buf[d.pos+1])<<48 |
		uint64(d.buf[d.pos+2])<<40 | uint64(d.buf[d.pos+3])<<32 |
		uint64(d.buf[d.pos+4])<<24 | uint64(d.buf[d.pos+5])<<16 |
		uint64(d.buf[d.pos+6])<<8 | uint64(d.buf[d.pos+7])
	d.pos += 8
	return v, nil
}

// ReadInt16 reads an int16 in big-endian byte order.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads an int32 in big-endian byte order.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads an int64 in big-endian byte order.
func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a float32 in IEEE 754 format (big-endian).
func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a float64 in IEEE 754 format (big-endian).
func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
