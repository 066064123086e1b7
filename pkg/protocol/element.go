package protocol

import (
	"fmt"
	"math"
)

// ElementKind identifies the wire primitive an Element carries.
type ElementKind uint8

// Element kinds. Every kind has a fixed wire form; see Element.EncodeTo.
const (
	KindString        ElementKind = iota + 1 // VarInt length + UTF-8 bytes
	KindByteArray                            // VarInt length + raw bytes
	KindUnsignedByte                         // 1 byte
	KindByte                                 // 1 byte, two's complement
	KindVarInt                               // 1-5 bytes
	KindShort                                // 2 bytes, big-endian
	KindUnsignedShort                        // 2 bytes, big-endian
	KindInt                                  // 4 bytes, big-endian
	KindLong                                 // 8 bytes, big-endian
	KindFloat                                // 4 bytes, IEEE 754 big-endian
	KindDouble                               // 8 bytes, IEEE 754 big-endian
	KindBool                                 // 1 byte, 0x00 or 0x01
)

// String returns the string representation of the element kind.
func (k ElementKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindByteArray:
		return "ByteArray"
	case KindUnsignedByte:
		return "UnsignedByte"
	case KindByte:
		return "Byte"
	case KindVarInt:
		return "VarInt"
	case KindShort:
		return "Short"
	case KindUnsignedShort:
		return "UnsignedShort"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Element is one typed value of a packet payload. Construct it with
// the kind-specific constructors below; the zero Element is invalid.
type Element struct {
	kind ElementKind
	bits uint64 // integer, bool and float kinds
	text string // KindString
	data []byte // KindByteArray
}

// StringElement returns a String element.
func StringElement(s string) Element { return Element{kind: KindString, text: s} }

// ByteArrayElement returns a ByteArray element. b is not copied.
func ByteArrayElement(b []byte) Element { return Element{kind: KindByteArray, data: b} }

// UnsignedByteElement returns an UnsignedByte element.
func UnsignedByteElement(v uint8) Element { return Element{kind: KindUnsignedByte, bits: uint64(v)} }

// ByteElement returns a Byte element.
func ByteElement(v int8) Element { return Element{kind: KindByte, bits: uint64(uint8(v))} }

// VarIntElement returns a VarInt element.
func VarIntElement(v int32) Element { return Element{kind: KindVarInt, bits: uint64(uint32(v))} }

// ShortElement returns a Short element.
func ShortElement(v int16) Element { return Element{kind: KindShort, bits: uint64(uint16(v))} }

// UnsignedShortElement returns an UnsignedShort element.
func UnsignedShortElement(v uint16) Element { return Element{kind: KindUnsignedShort, bits: uint64(v)} }

// IntElement returns an Int element.
func IntElement(v int32) Element { return Element{kind: KindInt, bits: uint64(uint32(v))} }

// LongElement returns a Long element.
func LongElement(v int64) Element { return Element{kind: KindLong, bits: uint64(v)} }

// FloatElement returns a Float element.
func FloatElement(v float32) Element { return Element{kind: KindFloat, bits: uint64(math.Float32bits(v))} }

// DoubleElement returns a Double element.
func DoubleElement(v float64) Element { return Element{kind: KindDouble, bits: math.Float64bits(v)} }

// BoolElement returns a Bool element.
func BoolElement(v bool) Element {
	e := Element{kind: KindBool}
	if v {
		e.bits = 1
	}
	return e
}

// Valid reports whether e was built by one of the constructors.
func (e Element) Valid() bool {
	return e.kind >= KindString && e.kind <= KindBool
}

// Kind returns the element's wire primitive.
func (e Element) Kind() ElementKind {
	return e.kind
}

// Text returns the value of a KindString element.
func (e Element) Text() string {
	return e.text
}

// Data returns the value of a KindByteArray element.
func (e Element) Data() []byte {
	return e.data
}

// Int returns the value of an integer or bool element, sign-extended
// according to its kind.
func (e Element) Int() int64 {
	switch e.kind {
	case KindByte:
		return int64(int8(e.bits))
	case KindShort:
		return int64(int16(e.bits))
	case KindVarInt, KindInt:
		return int64(int32(e.bits))
	default:
		return int64(e.bits)
	}
}

// Float returns the value of a KindFloat or KindDouble element.
func (e Element) Float() float64 {
	if e.kind == KindFloat {
		return float64(math.Float32frombits(uint32(e.bits)))
	}
	return math.Float64frombits(e.bits)
}

// Bool returns the value of a KindBool element.
func (e Element) Bool() bool {
	return e.bits != 0
}

// wireSize returns the encoded size of a valid element.
func (e Element) wireSize() int {
	switch e.kind {
	case KindString:
		return VarIntLen(int32(len(e.text))) + len(e.text)
	case KindByteArray:
		return VarIntLen(int32(len(e.data))) + len(e.data)
	case KindVarInt:
		return VarIntLen(int32(e.bits))
	case KindShort, KindUnsignedShort:
		return 2
	case KindInt, KindFloat:
		return 4
	case KindLong, KindDouble:
		return 8
	default:
		return 1
	}
}

// EncodeTo appends the element's wire form to enc.
// It panics if e is not Valid.
func (e Element) EncodeTo(enc *Encoder) {
	switch e.kind {
	case KindString:
		enc.WriteString(e.text)
	case KindByteArray:
		enc.WriteLenBytes(e.data)
	case KindUnsignedByte, KindByte, KindBool:
		enc.WriteUint8(uint8(e.bits))
	case KindVarInt:
		enc.WriteVarInt(int32(e.bits))
	case KindShort, KindUnsignedShort:
		enc.WriteUint16(uint16(e.bits))
	case KindInt, KindFloat:
		enc.WriteUint32(uint32(e.bits))
	case KindLong, KindDouble:
		enc.WriteUint64(e.bits)
	default:
		panic(fmt.Sprintf("protocol: encode of invalid element kind %d", e.kind))
	}
}

// DecodeElement reads one element of the given kind from d.
func DecodeElement(d *Decoder, kind ElementKind) (Element, error) {
	switch kind {
	case KindString:
		s, err := d.ReadString()
		return StringElement(s), err
	case KindByteArray:
		b, err := d.ReadLenBytes()
		return ByteArrayElement(b), err
	case KindUnsignedByte:
		v, err := d.ReadUint8()
		return UnsignedByteElement(v), err
	case KindByte:
		v, err := d.ReadInt8()
		return ByteElement(v), err
	case KindBool:
		v, err := d.ReadBool()
		return BoolElement(v), err
	case KindVarInt:
		v, err := d.ReadVarInt()
		return VarIntElement(v), err
	case KindShort:
		v, err := d.ReadInt16()
		return ShortElement(v), err
	case KindUnsignedShort:
		v, err := d.ReadUint16()
		return UnsignedShortElement(v), err
	case KindInt:
		v, err := d.ReadInt32()
		return IntElement(v), err
	case KindLong:
		v, err := d.ReadInt64()
		return LongElement(v), err
	case KindFloat:
		v, err := d.ReadFloat32()
		return FloatElement(v), err
	case KindDouble:
		v, err := d.ReadFloat64()
		return DoubleElement(v), err
	default:
		return Element{}, fmt.Errorf("%w: kind %d", ErrInvalidElement, kind)
	}
}

// DecodeElements reads one element per kind, in order, from payload.
// Trailing bytes are an error.
func DecodeElements(payload []byte, kinds ...ElementKind) ([]Element, error) {
	d := NewDecoder(payload)
	out := make([]Element, 0, len(kinds))
	for _, kind := range kinds {
		e, err := DecodeElement(d, kind)
		if err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", len(out), kind, err)
		}
		out = append(out, e)
	}
	if !d.EOF() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedFrame, d.Remaining())
	}
	return out, nil
}
