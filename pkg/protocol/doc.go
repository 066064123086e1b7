// Package protocol implements the binary wire format of a length-prefixed,
// packet-oriented game protocol: VarInts, packet framing, threshold-based
// zlib compression and a typed payload builder.
//
// Everything here is a pure transformation over byte slices, except the
// functions that take an io.Reader or io.Writer. Those block only inside
// the caller's reader or writer; there is no internal goroutine, timeout
// or cancellation. A caller that needs deadlines sets them on the
// underlying connection.
//
// # VarInt
//
// A 32-bit integer, treated as an unsigned bit pattern, written as 1-5
// bytes. Each byte holds 7 data bits, least significant group first, and
// the high bit is set on every byte except the last:
//
//	300 → 0xAC 0x02
//	-1  → 0xFF 0xFF 0xFF 0xFF 0x0F
//
// # Plain Frame
//
//	┌──────────────────┬──────────────┬──────────────────┐
//	│ Length (VarInt)  │ ID (VarInt)  │ Payload          │
//	└──────────────────┴──────────────┴──────────────────┘
//
// Length counts the ID and payload bytes. A reader consumes exactly
// Length bytes after the prefix.
//
// # Compressed Frame
//
//	┌──────────────────┬─────────────────────────┬──────────────────┐
//	│ Length (VarInt)  │ Declared length (VarInt)│ Body             │
//	└──────────────────┴─────────────────────────┴──────────────────┘
//
// A declared length of 0 means Body is the uncompressed ID+payload block.
// Otherwise Body is a zlib stream that inflates to exactly the declared
// number of bytes. Blocks at least as long as the threshold are deflated.
//
// # Payload Elements
//
// Payloads are sequences of typed elements:
//
//   - String, ByteArray: VarInt length prefix + bytes
//   - UnsignedByte, Byte, Bool: 1 byte
//   - VarInt: 1-5 bytes
//   - Short, UnsignedShort: 2 bytes, big-endian
//   - Int, Float: 4 bytes, big-endian
//   - Long, Double: 8 bytes, big-endian
//
// # Usage Example
//
//	// Build a packet
//	b := protocol.NewBuilder()
//	b.InsertString("hi")
//	b.InsertVarInt(300)
//	frame, err := b.Build(0x05)
//
//	// Read it back
//	pkt, err := protocol.ReadFrame(bytes.NewReader(frame))
//	elems, err := protocol.DecodeElements(pkt.Payload,
//	    protocol.KindString, protocol.KindVarInt)
//
//	// Packet-at-a-time over a connection
//	s := protocol.NewStream(conn, protocol.WithLogger(logger))
//	s.SetCompressionThreshold(256)
//	err = s.WritePacket(0x01, payload)
//	pkt, err = s.ReadPacket()
//
// # File Structure
//
//   - varint.go: VarInt encoding/decoding
//   - encoder.go, decoder.go: payload primitives
//   - frame.go: plain framing
//   - compression.go: compressed framing
//   - element.go, builder.go: typed elements and the packet builder
//   - stream.go, options.go, observer.go: packet stream over io.ReadWriter
//   - errors.go, limits.go: error values and allocation limits
package protocol
