package protocol

import (
	"bytes"
	"io"
	"testing"
)

// === VarInt Benchmarks ===

func BenchmarkVarInt_EncodeSmall(b *testing.B) {
	buf := make([]byte, MaxVarIntLen)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PutVarInt(buf, 127)
	}
}

func BenchmarkVarInt_EncodeLarge(b *testing.B) {
	buf := make([]byte, MaxVarIntLen)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PutVarInt(buf, -1)
	}
}

func BenchmarkVarInt_DecodeSmall(b *testing.B) {
	buf := EncodeVarInt(127)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeVarInt(buf)
	}
}

func BenchmarkVarInt_DecodeLarge(b *testing.B) {
	buf := EncodeVarInt(-1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeVarInt(buf)
	}
}

func BenchmarkVarInt_Read(b *testing.B) {
	buf := EncodeVarInt(25565)
	r := bytes.NewReader(buf)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(buf)
		ReadVarInt(r)
	}
}

// === Encoder/Decoder Benchmarks ===

func BenchmarkEncoder_MixedTypes(b *testing.B) {
	e := NewEncoder()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
		e.WriteUint8(0x42)
		e.WriteVarInt(12345)
		e.WriteVarInt(-9876)
		e.WriteString("hello world")
		e.WriteUint32(0x12345678)
		e.WriteFloat64(3.14159)
	}
}

func BenchmarkDecoder_MixedTypes(b *testing.B) {
	e := NewEncoder()
	e.WriteUint8(0x42)
	e.WriteVarInt(12345)
	e.WriteVarInt(-9876)
	e.WriteString("hello world")
	e.WriteUint32(0x12345678)
	e.WriteFloat64(3.14159)
	data := e.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := NewDecoder(data)
		d.ReadUint8()
		d.ReadVarInt()
		d.ReadVarInt()
		d.ReadString()
		d.ReadUint32()
		d.ReadFloat64()
	}
}

// === Frame Benchmarks ===

func BenchmarkFrame_WriteSmall(b *testing.B) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WriteFramed(0x01, payload)
	}
}

func BenchmarkFrame_WriteLarge(b *testing.B) {
	payload := make([]byte, 10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WriteFramed(0x01, payload)
	}
}

func BenchmarkFrame_ReadSmall(b *testing.B) {
	frame := WriteFramed(0x01, []byte{0x01, 0x02, 0x03, 0x04})
	r := bytes.NewReader(frame)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(frame)
		ReadFrame(r)
	}
}

// === Compression Benchmarks ===

func BenchmarkCompression_Write(b *testing.B) {
	payload := bytes.Repeat([]byte{87}, 9521)
	b.SetBytes(int64(len(payload)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WriteCompressed(0x01, payload, 256)
	}
}

func BenchmarkCompression_WriteBelowThreshold(b *testing.B) {
	payload := make([]byte, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WriteCompressed(0x01, payload, 256)
	}
}

func BenchmarkCompression_Read(b *testing.B) {
	payload := bytes.Repeat([]byte{87}, 9521)
	frame, err := WriteCompressed(0x01, payload, 256)
	if err != nil {
		b.Fatal(err)
	}
	r := bytes.NewReader(frame)
	b.SetBytes(int64(len(payload)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(frame)
		ReadCompressed(r)
	}
}

// === Builder Benchmarks ===

func BenchmarkBuilder_Build(b *testing.B) {
	for i := 0; i < b.N; i++ {
		bld := NewBuilder()
		bld.InsertString("hi")
		bld.InsertVarInt(300)
		bld.InsertDouble(1.5)
		bld.InsertBool(true)
		bld.Build(0x05)
	}
}

func BenchmarkDecodeElements(b *testing.B) {
	bld := NewBuilder()
	bld.InsertString("hi")
	bld.InsertVarInt(300)
	bld.InsertDouble(1.5)
	bld.InsertBool(true)
	payload, err := bld.Payload()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeElements(payload, KindString, KindVarInt, KindDouble, KindBool)
	}
}

// === Stream Benchmarks ===

type discardConn struct {
	io.Reader
}

func (discardConn) Write(p []byte) (int, error) { return len(p), nil }

func BenchmarkStream_WritePacket(b *testing.B) {
	s := NewStream(discardConn{Reader: bytes.NewReader(nil)}, WithCompressionThreshold(256))
	payload := make([]byte, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.WritePacket(0x01, payload)
	}
}
