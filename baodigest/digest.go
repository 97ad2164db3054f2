// Package baodigest provides a "bao:<hex>"-prefixed string representation of
// a bao.Digest, in the style of a content-addressing digest string: quick to
// log, compare and pass across API boundaries, while still validating to a
// well-formed root hash.
package baodigest

import (
	"fmt"
	"io"
	"strings"

	"github.com/baoverify/bao/bao"
)

// Algorithm identifies the hash algorithm a Digest was produced with. Bao
// only ever has the one algorithm, but the "alg:hex" shape is kept so a
// Digest reads the same way other content-addressing digest strings do.
const Algorithm = "bao"

// Digest is a prefixed string representation of a bao.Digest: the literal
// "bao:" followed by 64 lowercase hex characters.
type Digest string

// NewDigest formats d as a Digest string.
func NewDigest(d bao.Digest) Digest {
	return Digest(fmt.Sprintf("%s:%s", Algorithm, d.String()))
}

// FromReader hashes the entirety of r and returns the resulting Digest.
func FromReader(r io.Reader) (Digest, error) {
	d, err := bao.Hash(r)
	if err != nil {
		return "", fmt.Errorf("baodigest: %w", err)
	}
	return NewDigest(d), nil
}

// Parse validates s and returns it as a Digest, with the hex portion in
// lowercase. An error is returned if the algorithm prefix is missing or
// unrecognized, or if the hex portion is not a well-formed bao.Digest.
func Parse(s string) (Digest, error) {
	alg, hex, ok := strings.Cut(s, ":")
	if !ok {
		return "", fmt.Errorf("%w: digest %q missing algorithm prefix", bao.ErrInvalidArgument, s)
	}
	if alg != Algorithm {
		return "", fmt.Errorf("%w: unsupported digest algorithm %q", bao.ErrInvalidArgument, alg)
	}
	root, err := bao.ParseDigest(hex)
	if err != nil {
		return "", err
	}
	return NewDigest(root), nil
}

// Validate reports whether d is well-formed.
func (d Digest) Validate() error {
	_, err := Parse(string(d))
	return err
}

// Algorithm returns the algorithm portion of d, without validating it.
func (d Digest) Algorithm() string {
	alg, _, _ := strings.Cut(string(d), ":")
	return alg
}

// Hex returns the hex portion of d, without validating it.
func (d Digest) Hex() string {
	_, hex, _ := strings.Cut(string(d), ":")
	return hex
}

// Root decodes the hex portion of d into a bao.Digest for use with Decode,
// Slice, and DecodeSlice.
func (d Digest) Root() (bao.Digest, error) {
	if err := d.Validate(); err != nil {
		return bao.Digest{}, err
	}
	return bao.ParseDigest(d.Hex())
}

// String returns d as a plain string.
func (d Digest) String() string {
	return string(d)
}
