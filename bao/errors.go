package bao

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the codecs in this package. Callers should
// compare with errors.Is; the concrete error may carry additional context
// via fmt.Errorf("...: %w", ...).
var (
	// ErrShortRead is returned when a byte source delivers fewer bytes than
	// a header, parent node, or chunk requires. Accepting a short read here
	// would open a reverse collision: two distinct inputs decoding to the
	// same root hash.
	ErrShortRead = errors.New("bao: short read")

	// ErrHashMismatch is returned when a node's computed hash does not
	// match the hash expected from its parent (or, for the root, from the
	// caller-supplied Digest).
	ErrHashMismatch = errors.New("bao: hash mismatch")

	// ErrInvalidArgument is returned for malformed call arguments: a slice
	// range that cannot be represented as a uint64 span, a missing outboard
	// stream, or a header whose length would overflow chunk-count
	// arithmetic.
	ErrInvalidArgument = errors.New("bao: invalid argument")

	// ErrMissingOutboard is returned when outboard mode is requested but no
	// outboard stream was supplied. It wraps ErrInvalidArgument.
	ErrMissingOutboard = fmt.Errorf("%w: missing outboard stream", ErrInvalidArgument)
)
