package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// EntrySize is the size of one entry slot in bytes.
	EntrySize = 32
	// MaxKeyLen is the longest key the format stores, excluding the
	// null terminator.
	MaxKeyLen = 15
	// MaxPayload bounds STR/BLOB payloads, terminator included.
	MaxPayload = 0xFFFF

	keyOffset  = 8
	keySpace   = 16
	dataOffset = 24
)

// Entry is one logical record in its pre-placement form: the head-slot
// fields plus any payload that spills into the following slots.
//
// Head slot layout:
//
//	[Namespace(1)][Type(1)][Span(1)][0xFF(1)][CRC32(4)][Key(16)][Data(8)]
type Entry struct {
	Namespace byte // 0 for namespace definitions, 1..254 for data
	Type      ValueType
	Span      int // consecutive slots occupied, head slot included
	Key       string
	Data      [8]byte // head-slot bytes 24..31
	Payload   []byte  // overflow bytes for Str/Blob, nil otherwise
}

// NewEntry builds the entry recording one key/value pair owned by the
// namespace with index ns.
func NewEntry(ns byte, key string, v Value) (*Entry, error) {
	if len(key) > MaxKeyLen {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrKeyTooLong, key, len(key))
	}
	e := &Entry{Namespace: ns, Type: v.typ, Span: 1, Key: key}
	for i := range e.Data {
		e.Data[i] = 0xFF
	}
	switch v.typ {
	case TypeU8, TypeU16, TypeU32, TypeI8, TypeI16, TypeI32:
		u := uint64(v.num)
		for i := 0; i < v.typ.numericWidth(); i++ {
			e.Data[i] = byte(u >> (8 * i))
		}
	case TypeStr:
		return e.withPayload(append([]byte(v.str), 0))
	case TypeBlob:
		return e.withPayload(append([]byte(nil), v.blob...))
	default:
		return nil, fmt.Errorf("%w: key %q", ErrValueUnsupported, key)
	}
	return e, nil
}

func (e *Entry) withPayload(p []byte) (*Entry, error) {
	if len(p) > MaxPayload {
		return nil, fmt.Errorf("%w: key %q carries %d bytes", ErrValueTooLarge, e.Key, len(p))
	}
	e.Payload = p
	e.Span = 1 + (len(p)+EntrySize-1)/EntrySize
	binary.LittleEndian.PutUint16(e.Data[0:2], uint16(len(p)))
	return e, nil
}

// NamespaceEntry builds the definition entry binding name to index.
func NamespaceEntry(name string, index byte) (*Entry, error) {
	if len(name) > MaxKeyLen {
		return nil, fmt.Errorf("%w: namespace %q is %d bytes", ErrKeyTooLong, name, len(name))
	}
	e := &Entry{Namespace: 0, Type: TypeU8, Span: 1, Key: name}
	for i := range e.Data {
		e.Data[i] = 0xFF
	}
	e.Data[0] = index
	return e, nil
}

// IsNamespace reports whether e is a namespace-definition entry.
func (e *Entry) IsNamespace() bool {
	return e.Namespace == 0 && e.Type == TypeU8
}

// Size returns the number of bytes e occupies when marshalled.
func (e *Entry) Size() int { return e.Span * EntrySize }

// Marshal serializes e into dst, which must be at least Size() bytes.
// Bytes the format leaves unwritten are set to the erased state 0xFF;
// the key field is null-terminated and zero-padded.
func (e *Entry) Marshal(dst []byte) {
	if len(dst) < e.Size() {
		panic("codec: entry buffer shorter than span")
	}
	dst = dst[:e.Size()]
	for i := range dst {
		dst[i] = 0xFF
	}
	head := dst[:EntrySize]
	head[0] = e.Namespace
	head[1] = byte(e.Type)
	head[2] = byte(e.Span)
	for i := keyOffset; i < keyOffset+keySpace; i++ {
		head[i] = 0
	}
	copy(head[keyOffset:], e.Key)
	copy(head[dataOffset:], e.Data[:])
	copy(dst[EntrySize:], e.Payload)
	binary.LittleEndian.PutUint32(head[4:8], EntryChecksum(head))
}

// ParseEntry decodes the record whose head slot is at slots[0:32];
// slots must hold the entry's full span of consecutive 32-byte slots.
func ParseEntry(slots []byte) (*Entry, error) {
	if len(slots) < EntrySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedEntry, len(slots))
	}
	head := slots[:EntrySize]
	typ := ValueType(head[1])
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownType, head[1])
	}
	span := int(head[2])
	if span < 1 || len(slots) < span*EntrySize {
		return nil, fmt.Errorf("%w: span %d exceeds %d available bytes", ErrMalformedEntry, span, len(slots))
	}
	e := &Entry{
		Namespace: head[0],
		Type:      typ,
		Span:      span,
		Key:       keyString(head[keyOffset : keyOffset+keySpace]),
	}
	copy(e.Data[:], head[dataOffset:])
	if typ == TypeStr || typ == TypeBlob {
		n := int(binary.LittleEndian.Uint16(e.Data[0:2]))
		if n > (span-1)*EntrySize {
			return nil, fmt.Errorf("%w: payload length %d exceeds span %d", ErrMalformedEntry, n, span)
		}
		e.Payload = append([]byte(nil), slots[EntrySize:EntrySize+n]...)
	}
	return e, nil
}

// Value reconstructs the typed value e carries. For namespace
// definitions this is the assigned index as a U8.
func (e *Entry) Value() (Value, error) {
	switch e.Type {
	case TypeU8, TypeU16, TypeU32, TypeI8, TypeI16, TypeI32:
		w := e.Type.numericWidth()
		var u uint64
		for i := w - 1; i >= 0; i-- {
			u = u<<8 | uint64(e.Data[i])
		}
		if e.Type.signed() {
			s := int64(u<<(64-8*w)) >> (64 - 8*w)
			switch e.Type {
			case TypeI8:
				return I8(int8(s)), nil
			case TypeI16:
				return I16(int16(s)), nil
			default:
				return I32(int32(s)), nil
			}
		}
		switch e.Type {
		case TypeU8:
			return U8(uint8(u)), nil
		case TypeU16:
			return U16(uint16(u)), nil
		default:
			return U32(uint32(u)), nil
		}
	case TypeStr:
		b := e.Payload
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return Str(string(b)), nil
	case TypeBlob:
		return Blob(e.Payload), nil
	}
	return Value{}, fmt.Errorf("%w: 0x%02x", ErrUnknownType, byte(e.Type))
}

// keyString cuts the stored key at its null terminator.
func keyString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
