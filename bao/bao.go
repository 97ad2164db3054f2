// Package bao implements the Bao verified-streaming tree hash and encoding
// format: a Merkle tree of BLAKE2b node hashes over fixed-size content
// chunks, plus the codecs (Encode, Decode, Slice, DecodeSlice) that let a
// consumer verify every byte of a stream against a single 32-byte root
// digest, including an arbitrary verifiable sub-range.
package bao

const (
	// ChunkSize is the number of content bytes covered by one leaf node.
	ChunkSize = 4096
	// HashSize is the size in bytes of every node hash and of Digest.
	HashSize = 32
	// ParentSize is the size in bytes of a parent node: two child hashes.
	ParentSize = 2 * HashSize
	// HeaderSize is the size in bytes of the little-endian content-length
	// header that prefixes every encoded form.
	HeaderSize = 8
)
