package protocol

import "errors"

// Codec errors. Failures from the underlying reader or writer that are
// not end-of-stream conditions are returned unchanged, never wrapped in
// one of these.
var (
	// ErrMalformedVarInt means a VarInt's continuation chain ran past
	// MaxVarIntLen bytes.
	ErrMalformedVarInt = errors.New("protocol: malformed varint")

	// ErrTruncatedInput means the source ended before the expected
	// number of bytes was read.
	ErrTruncatedInput = errors.New("protocol: truncated input")

	// ErrCompressionDisabled means compressed framing was requested
	// with a negative threshold.
	ErrCompressionDisabled = errors.New("protocol: compression disabled")

	// ErrDecompressionMismatch means an inflated body did not match the
	// declared uncompressed length, or could not be inflated at all.
	ErrDecompressionMismatch = errors.New("protocol: decompressed length mismatch")

	// ErrBuilderConsumed is returned when a Builder is built twice.
	ErrBuilderConsumed = errors.New("protocol: builder already built")

	// ErrInvalidElement means an element was not built by one of the
	// constructors, or an unknown ElementKind was requested on decode.
	ErrInvalidElement = errors.New("protocol: invalid element")

	// ErrMalformedFrame means a negative length prefix, or bytes left
	// over after the expected elements of a payload.
	ErrMalformedFrame = errors.New("protocol: malformed frame")

	// ErrFrameTooLarge means a length prefix exceeded the read limit.
	ErrFrameTooLarge = errors.New("protocol: frame exceeds size limit")

	// ErrInvalidUTF8 means a decoded string was not valid UTF-8.
	ErrInvalidUTF8 = errors.New("protocol: invalid UTF-8 string")
)
