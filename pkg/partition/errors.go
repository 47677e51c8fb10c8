package partition

import "errors"

// Errors
var (
	ErrInvalidPartitionSize = errors.New("partition size must be a positive multiple of 4096")
	ErrPartitionTooSmall    = errors.New("partition too small for entry stream")
	ErrTooManyNamespaces    = errors.New("more than 254 namespaces")
	ErrCorruptEntry         = errors.New("entry checksum mismatch")
	ErrCorruptPageHeader    = errors.New("page header checksum mismatch")
)
