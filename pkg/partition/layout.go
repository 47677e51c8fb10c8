package partition

// On-flash geometry of an NVS partition.
const (
	// PageSize is the flash page size; partition sizes must be a
	// positive multiple of it.
	PageSize = 4096

	// EntriesPerPage is the number of 32-byte entry slots per page.
	// Slot 0 holds the entry bitmap, so records live in slots
	// 1..EntriesPerPage-1.
	EntriesPerPage = 126

	pageHeaderSize = 32

	// usableSlots is the per-page record capacity after the bitmap
	// slot is taken out.
	usableSlots = EntriesPerPage - 1
)

// Page states, stored little-endian in header bytes 0..3. The encoder
// only ever seals pages ACTIVE; FULL is written by firmware at
// runtime and recognized on decode.
const (
	pageActive uint32 = 0xFFFFFFFE
	pageFull   uint32 = 0xFFFFFFFC
	pageEmpty  uint32 = 0xFFFFFFFF
)

// erased is the content of unwritten flash.
const erased = 0xFF
