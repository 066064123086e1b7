package protocol

import "fmt"

// Builder accumulates typed elements and serializes them, in insertion
// order, into a packet.
//
// A Builder is one-shot: Build, BuildCompressed and Payload release the
// element sequence, after which every further build call returns
// ErrBuilderConsumed and inserts are ignored.
//
// Example:
//
//	b := protocol.NewBuilder()
//	b.InsertString("hi")
//	b.InsertVarInt(300)
//	frame, err := b.Build(0x05)
type Builder struct {
	elements []Element
	built    bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of elements inserted so far.
func (b *Builder) Len() int {
	return len(b.elements)
}

// Insert appends an element.
func (b *Builder) Insert(e Element) {
	if b.built {
		return
	}
	b.elements = append(b.elements, e)
}

// InsertString appends a String element.
func (b *Builder) InsertString(s string) {
	b.Insert(StringElement(s))
}

// InsertByteArray appends a ByteArray element.
func (b *Builder) InsertByteArray(data []byte) {
	b.Insert(ByteArrayElement(data))
}

// InsertUnsignedByte appends an UnsignedByte element.
func (b *Builder) InsertUnsignedByte(v uint8) {
	b.Insert(UnsignedByteElement(v))
}

// InsertByte appends a Byte element.
func (b *Builder) InsertByte(v int8) {
	b.Insert(ByteElement(v))
}

// InsertVarInt appends a VarInt element.
func (b *Builder) InsertVarInt(v int32) {
	b.Insert(VarIntElement(v))
}

// InsertShort appends a Short element.
func (b *Builder) InsertShort(v int16) {
	b.Insert(ShortElement(v))
}

// InsertUnsignedShort appends an UnsignedShort element.
func (b *Builder) InsertUnsignedShort(v uint16) {
	b.Insert(UnsignedShortElement(v))
}

// InsertInt appends an Int element.
func (b *Builder) InsertInt(v int32) {
	b.Insert(IntElement(v))
}

// InsertLong appends a Long element.
func (b *Builder) InsertLong(v int64) {
	b.Insert(LongElement(v))
}

// InsertFloat appends a Float element.
func (b *Builder) InsertFloat(v float32) {
	b.Insert(FloatElement(v))
}

// InsertDouble appends a Double element.
func (b *Builder) InsertDouble(v float64) {
	b.Insert(DoubleElement(v))
}

// InsertBool appends a Bool element.
func (b *Builder) InsertBool(v bool) {
	b.Insert(BoolElement(v))
}

// Payload serializes the elements and consumes the builder. If an
// element is invalid it returns ErrInvalidElement and leaves the
// builder untouched.
func (b *Builder) Payload() ([]byte, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}

	size := 0
	for i, e := range b.elements {
		if !e.Valid() {
			return nil, fmt.Errorf("%w: element %d", ErrInvalidElement, i)
		}
		size += e.wireSize()
	}

	enc := NewEncoderWithCap(size)
	for _, e := range b.elements {
		e.EncodeTo(enc)
	}
	b.elements = nil
	b.built = true
	return enc.Bytes(), nil
}

// Build serializes the elements into a plain packet frame with the
// given id and consumes the builder.
func (b *Builder) Build(id int32) ([]byte, error) {
	payload, err := b.Payload()
	if err != nil {
		return nil, err
	}
	return WriteFramed(id, payload), nil
}

// BuildCompressed serializes the elements into a compressed packet
// frame and consumes the builder. See WriteCompressed.
func (b *Builder) BuildCompressed(id int32, threshold int) ([]byte, error) {
	if threshold < 0 {
		return nil, ErrCompressionDisabled
	}
	payload, err := b.Payload()
	if err != nil {
		return nil, err
	}
	return WriteCompressed(id, payload, threshold)
}
