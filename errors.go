package fsst

import "errors"

// ErrOutputTooSmall is returned when a caller-supplied destination buffer
// cannot hold the guaranteed worst-case bound for an encode or decode call.
// No bytes are written to the caller's buffer when this error is returned.
var ErrOutputTooSmall = errors.New("fsst: output buffer too small")

// ErrMalformedTable is returned when a serialized symbol table fails a
// length, bounds, or magic-number check during import.
var ErrMalformedTable = errors.New("fsst: malformed symbol table")

// ErrBadVersion is a specific cause of ErrMalformedTable: the serialized
// blob's version byte does not match a version this build understands.
var ErrBadVersion = errors.New("fsst: unsupported table version")

// ErrBadEndianness is a specific cause of ErrMalformedTable: the serialized
// blob declares a byte order this build cannot read (only little-endian
// blobs are supported).
var ErrBadEndianness = errors.New("fsst: unsupported endianness tag")
