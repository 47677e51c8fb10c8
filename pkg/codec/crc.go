package codec

import "hash/crc32"

// Checksum computes the CRC32 used throughout the NVS format: the
// reversed IEEE 802.3 polynomial 0xEDB88320 with initial value
// 0xFFFFFFFF and final XOR 0xFFFFFFFF. It is stored little-endian
// wherever it appears in the image.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// EntryChecksum computes the CRC of an entry's 32-byte head slot over
// the 28-byte window formed by bytes 0..3 and 8..31. Bytes 4..7 hold
// the stored checksum and are excluded.
func EntryChecksum(head []byte) uint32 {
	var w [28]byte
	copy(w[0:4], head[0:4])
	copy(w[4:28], head[8:32])
	return Checksum(w[:])
}
