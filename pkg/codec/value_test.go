package codec

import (
	"math"
	"testing"
)

func TestInt_NarrowestFit(t *testing.T) {
	testCases := []struct {
		name string
		in   int64
		typ  ValueType
	}{
		{"zero is u8", 0, TypeU8},
		{"255 is u8", 255, TypeU8},
		{"256 is u16", 256, TypeU16},
		{"65535 is u16", 65535, TypeU16},
		{"65536 is u32", 65536, TypeU32},
		{"max u32", math.MaxUint32, TypeU32},
		{"-1 is i8", -1, TypeI8},
		{"-128 is i8", -128, TypeI8},
		{"-129 is i16", -129, TypeI16},
		{"-32768 is i16", -32768, TypeI16},
		{"-32769 is i32", -32769, TypeI32},
		{"min i32", math.MinInt32, TypeI32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Int(tc.in)
			if err != nil {
				t.Fatalf("Int(%d) failed: %v", tc.in, err)
			}
			if v.Type() != tc.typ {
				t.Errorf("Int(%d) type: got %v, want %v", tc.in, v.Type(), tc.typ)
			}
			if v.Int64() != tc.in {
				t.Errorf("Int(%d) payload: got %d", tc.in, v.Int64())
			}
		})
	}
}

func TestInt_Overflow(t *testing.T) {
	for _, in := range []int64{math.MaxUint32 + 1, math.MinInt32 - 1, math.MaxInt64, math.MinInt64} {
		if _, err := Int(in); err == nil {
			t.Errorf("Int(%d) should not fit a 32-bit integer", in)
		}
	}
}

func TestUint(t *testing.T) {
	v, err := Uint(1883)
	if err != nil {
		t.Fatalf("Uint failed: %v", err)
	}
	if v.Type() != TypeU16 || v.Uint64() != 1883 {
		t.Errorf("Uint(1883): got %v", v)
	}

	if _, err := Uint(math.MaxUint32 + 1); err == nil {
		t.Error("Uint should reject values above 32 bits")
	}
}

func TestValue_Equal(t *testing.T) {
	testCases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same u16", U16(1883), U16(1883), true},
		{"different u16", U16(1883), U16(80), false},
		{"same number different tag", U8(1), I8(1), false},
		{"same string", Str("net"), Str("net"), true},
		{"different string", Str("net"), Str("other"), false},
		{"same blob", Blob([]byte{1, 2, 3}), Blob([]byte{1, 2, 3}), true},
		{"different blob", Blob([]byte{1, 2, 3}), Blob([]byte{1, 2}), false},
		{"string vs blob", Str("abc"), Blob([]byte("abc")), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal(%v, %v): got %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestBlob_Copies(t *testing.T) {
	raw := []byte{1, 2, 3}
	v := Blob(raw)
	raw[0] = 9
	if v.Blob()[0] != 1 {
		t.Error("Blob should not alias the caller's slice")
	}
}
