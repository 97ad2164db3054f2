package bao

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Digest is the 32-byte root hash produced by Hash and consumed by Decode,
// Slice, and DecodeSlice. Its zero value is not a valid digest of anything;
// callers obtain one from Hash or ParseDigest.
type Digest [HashSize]byte

// String renders the digest as lowercase hex, the same textual convention
// the teacher's digest package uses for its "alg:hex" strings, minus the
// algorithm prefix since Bao only ever has one algorithm.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest decodes a 64-character lowercase-hex string into a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != HashSize*2 {
		return d, fmt.Errorf("%w: digest must be %d hex characters, got %d", ErrInvalidArgument, HashSize*2, len(s))
	}
	n, err := hex.Decode(d[:], []byte(s))
	if err != nil {
		return Digest{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if n != HashSize {
		return Digest{}, fmt.Errorf("%w: short digest decode", ErrInvalidArgument)
	}
	return d, nil
}

// Equal reports whether d and other are the same digest, comparing in
// constant time so that verification code never leaks a partial match
// through timing.
func (d Digest) Equal(other Digest) bool {
	return subtle.ConstantTimeCompare(d[:], other[:]) == 1
}
