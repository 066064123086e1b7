package protocol

import (
	"errors"
	"testing"
)

func TestElementKindString(t *testing.T) {
	tests := []struct {
		kind ElementKind
		want string
	}{
		{KindString, "String"},
		{KindVarInt, "VarInt"},
		{KindUnsignedShort, "UnsignedShort"},
		{KindBool, "Bool"},
		{ElementKind(0), "Unknown"},
		{ElementKind(200), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("ElementKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestElementValid(t *testing.T) {
	if (Element{}).Valid() {
		t.Error("zero Element is valid")
	}
	if !StringElement("").Valid() || !BoolElement(false).Valid() {
		t.Error("constructed Element is not valid")
	}
}

func TestElementEncodeToPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("EncodeTo on zero Element did not panic")
		}
	}()
	Element{}.EncodeTo(NewEncoder())
}

func TestDecodeElementsErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		kinds   []ElementKind
		want    error
	}{
		{"trailing_bytes", []byte{0x01, 0x02}, []ElementKind{KindUnsignedByte}, ErrMalformedFrame},
		{"short_int", []byte{0x01, 0x02}, []ElementKind{KindInt}, ErrTruncatedInput},
		{"bad_varint", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, []ElementKind{KindVarInt}, ErrMalformedVarInt},
		{"unknown_kind", []byte{0x00}, []ElementKind{ElementKind(99)}, ErrInvalidElement},
		{"second_element_short", []byte{0x01, 0x00}, []ElementKind{KindBool, KindShort}, ErrTruncatedInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeElements(tc.payload, tc.kinds...); !errors.Is(err, tc.want) {
				t.Errorf("DecodeElements() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeElementsNoKinds(t *testing.T) {
	elems, err := DecodeElements(nil)
	if err != nil {
		t.Fatalf("DecodeElements() error = %v", err)
	}
	if len(elems) != 0 {
		t.Errorf("DecodeElements() = %d elements, want 0", len(elems))
	}
}
