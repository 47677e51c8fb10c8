package codec

import "errors"

// Errors
var (
	ErrKeyTooLong       = errors.New("key exceeds 15 bytes")
	ErrValueTooLarge    = errors.New("value exceeds 65535 bytes")
	ErrValueUnsupported = errors.New("unsupported value type")
	ErrUnknownType      = errors.New("unknown entry type tag")
	ErrMalformedEntry   = errors.New("malformed entry")
)
