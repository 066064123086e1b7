package protocol

// Allocation limits to keep a hostile length prefix from forcing huge
// allocations. These complement the VarInt bounds in varint.go.
const (
	// DefaultMaxFrameLength is the largest frame body accepted by
	// ReadLengthPrefixed (2^21 - 1, the largest 3-byte VarInt).
	// It also caps the declared length of a compressed frame.
	DefaultMaxFrameLength = 1<<21 - 1

	// DefaultMaxStringLength caps the byte length of a decoded string:
	// 32767 characters at up to 4 UTF-8 bytes each.
	DefaultMaxStringLength = 32767 * 4
)
