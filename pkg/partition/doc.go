// Package partition encodes and decodes whole ESP-IDF NVS partition
// images.
//
// A partition is a sequence of 4096-byte pages. Each page carries a
// 32-byte header (state, sequence number, CRC32) and 126 entry slots,
// the first of which holds the entry bitmap. Records are placed by
// pkg/codec and never span a page boundary.
//
// Encode and Decode are pure, deterministic transforms over byte
// buffers; the only side channel is an optional zerolog sink supplied
// through WithLogger.
package partition
