package codec

import (
	"bytes"
	"fmt"
	"math"
)

// ValueType is the one-byte type tag stored in an entry.
type ValueType byte

const (
	TypeU8   ValueType = 0x01
	TypeU16  ValueType = 0x02
	TypeU32  ValueType = 0x04
	TypeI8   ValueType = 0x11
	TypeI16  ValueType = 0x12
	TypeI32  ValueType = 0x14
	TypeStr  ValueType = 0x21
	TypeBlob ValueType = 0x41
)

// Valid reports whether t is a tag this codec understands.
func (t ValueType) Valid() bool {
	switch t {
	case TypeU8, TypeU16, TypeU32, TypeI8, TypeI16, TypeI32, TypeStr, TypeBlob:
		return true
	}
	return false
}

func (t ValueType) String() string {
	switch t {
	case TypeU8:
		return "u8"
	case TypeU16:
		return "u16"
	case TypeU32:
		return "u32"
	case TypeI8:
		return "i8"
	case TypeI16:
		return "i16"
	case TypeI32:
		return "i32"
	case TypeStr:
		return "string"
	case TypeBlob:
		return "blob"
	}
	return fmt.Sprintf("0x%02x", byte(t))
}

// numericWidth returns the payload width in bytes for fixed-width
// tags, and 0 for variable-length tags.
func (t ValueType) numericWidth() int {
	switch t {
	case TypeU8, TypeI8:
		return 1
	case TypeU16, TypeI16:
		return 2
	case TypeU32, TypeI32:
		return 4
	}
	return 0
}

func (t ValueType) signed() bool {
	return t == TypeI8 || t == TypeI16 || t == TypeI32
}

// Value is one typed NVS value. The zero Value is invalid; build
// values with the typed constructors or the Int/Uint helpers.
type Value struct {
	typ  ValueType
	num  int64
	str  string
	blob []byte
}

func U8(v uint8) Value   { return Value{typ: TypeU8, num: int64(v)} }
func U16(v uint16) Value { return Value{typ: TypeU16, num: int64(v)} }
func U32(v uint32) Value { return Value{typ: TypeU32, num: int64(v)} }
func I8(v int8) Value    { return Value{typ: TypeI8, num: int64(v)} }
func I16(v int16) Value  { return Value{typ: TypeI16, num: int64(v)} }
func I32(v int32) Value  { return Value{typ: TypeI32, num: int64(v)} }
func Str(s string) Value { return Value{typ: TypeStr, str: s} }
func Blob(b []byte) Value {
	return Value{typ: TypeBlob, blob: append([]byte(nil), b...)}
}

// Int maps v onto the narrowest tag that holds it: the unsigned ladder
// (U8, U16, U32) for non-negative values, matching the reference
// generator, and the signed ladder for negatives.
func Int(v int64) (Value, error) {
	switch {
	case v >= 0:
		switch {
		case v <= math.MaxUint8:
			return U8(uint8(v)), nil
		case v <= math.MaxUint16:
			return U16(uint16(v)), nil
		case v <= math.MaxUint32:
			return U32(uint32(v)), nil
		}
	case v >= math.MinInt8:
		return I8(int8(v)), nil
	case v >= math.MinInt16:
		return I16(int16(v)), nil
	case v >= math.MinInt32:
		return I32(int32(v)), nil
	}
	return Value{}, fmt.Errorf("%w: %d does not fit a 32-bit integer", ErrValueUnsupported, v)
}

// Uint is the unsigned counterpart of Int.
func Uint(v uint64) (Value, error) {
	if v > math.MaxUint32 {
		return Value{}, fmt.Errorf("%w: %d does not fit a 32-bit integer", ErrValueUnsupported, v)
	}
	return Int(int64(v))
}

// Type returns the tag carried by v.
func (v Value) Type() ValueType { return v.typ }

// Int64 returns the numeric payload for fixed-width tags, 0 otherwise.
func (v Value) Int64() int64 { return v.num }

// Uint64 returns the numeric payload reinterpreted as unsigned.
func (v Value) Uint64() uint64 { return uint64(v.num) }

// Str returns the string payload for TypeStr values.
func (v Value) Str() string { return v.str }

// Blob returns the raw payload for TypeBlob values.
func (v Value) Blob() []byte { return append([]byte(nil), v.blob...) }

// Equal reports whether v and o carry the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeStr:
		return v.str == o.str
	case TypeBlob:
		return bytes.Equal(v.blob, o.blob)
	}
	return v.num == o.num
}

func (v Value) String() string {
	switch v.typ {
	case TypeStr:
		return fmt.Sprintf("string(%q)", v.str)
	case TypeBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.blob))
	case TypeU8, TypeU16, TypeU32:
		return fmt.Sprintf("%s(%d)", v.typ, uint64(v.num))
	}
	return fmt.Sprintf("%s(%d)", v.typ, v.num)
}
