// Package codec encodes and decodes individual ESP-IDF NVS entries.
//
// NVS stores key-value pairs as fixed 32-byte entry slots. Every
// record starts with a head slot:
//
//	[Namespace(1)][Type(1)][Span(1)][0xFF(1)][CRC32(4)][Key(16)][Data(8)]
//
// Fields:
//   - Namespace: index of the owning namespace; 0 marks a namespace
//     definition, 1..254 reference a defined namespace
//   - Type: one-byte value tag (see ValueType)
//   - Span: number of consecutive slots the record occupies
//   - CRC32: checksum over head-slot bytes 0..3 and 8..31
//     (little-endian)
//   - Key: ASCII key, null-terminated and zero-padded, at most 15
//     significant bytes
//   - Data: the value for fixed-width numerics (little-endian, unused
//     trailing bytes 0xFF), or a 16-bit payload length for strings and
//     blobs
//
// String and blob payloads occupy the span-1 slots following the head
// slot; trailing bytes of the last slot keep the erased state 0xFF.
// String payloads include a null terminator in their stored length.
//
// # Values
//
// Value is a tagged variant covering the eight supported tags. The
// typed constructors (U8 through I32, Str, Blob) state the tag
// explicitly; Int and Uint pick the narrowest tag that fits, using the
// unsigned ladder for non-negative values the same way the reference
// generator does.
//
// # CRC32
//
// Checksum implements the format's CRC32 (reversed IEEE 802.3
// polynomial, init 0xFFFFFFFF, final XOR 0xFFFFFFFF). The same
// function covers page headers; EntryChecksum assembles the entry
// window described above.
//
// The package is purely computational: entries are built, marshalled
// into caller-provided buffers, and parsed back without any I/O.
// Placement of entries into pages lives in pkg/partition.
package codec
