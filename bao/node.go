package bao

import (
	"fmt"

	"github.com/baoverify/bao/internal/blake2b"
)

// finalization carries the content length N when a node is the tree's root,
// or is absent (none) for every other node. Only the root is hashed with
// the BLAKE2b last-node flag set and with N appended to the hash state.
type finalization struct {
	set   bool
	value uint64
}

// none is the finalization used for every non-root node.
var none = finalization{}

// rootFinalization builds the finalization for a root node covering n bytes
// of content.
func rootFinalization(n uint64) finalization {
	return finalization{set: true, value: n}
}

func nodeParams(digestSize byte, isChunk bool, f finalization) blake2b.Params {
	var nodeDepth byte
	if !isChunk {
		nodeDepth = 1
	}
	return blake2b.Params{
		DigestSize:  digestSize,
		Fanout:      2,
		Depth:       64,
		LeafLength:  ChunkSize,
		NodeOffset:  0,
		NodeDepth:   nodeDepth,
		InnerLength: HashSize,
		LastNode:    f.set,
	}
}

// hashNode hashes a single node's bytes with the BLAKE2b tree parameters
// fixed for Bao (see nodeParams), appending the little-endian
// content length to the state first when f is a root finalization.
func hashNode(nodeBytes []byte, isChunk bool, f finalization) (Digest, error) {
	h, err := blake2b.New(nodeParams(HashSize, isChunk, f))
	if err != nil {
		return Digest{}, err
	}
	if _, err := h.Write(nodeBytes); err != nil {
		return Digest{}, err
	}
	if f.set {
		lenBytes := encodeLen(f.value)
		if _, err := h.Write(lenBytes[:]); err != nil {
			return Digest{}, err
		}
	}
	var out Digest
	sum := h.Sum(nil)
	copy(out[:], sum)
	return out, nil
}

// hashChunk hashes up to ChunkSize bytes of content as a leaf node.
func hashChunk(chunkBytes []byte, f finalization) (Digest, error) {
	return hashNode(chunkBytes, true, f)
}

// hashParent hashes exactly ParentSize bytes (left hash || right hash) as
// an interior node.
func hashParent(parentBytes []byte, f finalization) (Digest, error) {
	if len(parentBytes) != ParentSize {
		return Digest{}, fmt.Errorf("%w: parent node must be %d bytes, got %d", ErrInvalidArgument, ParentSize, len(parentBytes))
	}
	return hashNode(parentBytes, false, f)
}

// verifyChunk hashes chunkBytes as a leaf node and checks the result
// against expected in constant time.
func verifyChunk(chunkBytes []byte, f finalization, expected Digest) error {
	got, err := hashChunk(chunkBytes, f)
	if err != nil {
		return err
	}
	if !got.Equal(expected) {
		return ErrHashMismatch
	}
	return nil
}

// verifyParent hashes parentBytes as an interior node and checks the result
// against expected in constant time.
func verifyParent(parentBytes []byte, f finalization, expected Digest) error {
	got, err := hashParent(parentBytes, f)
	if err != nil {
		return err
	}
	if !got.Equal(expected) {
		return ErrHashMismatch
	}
	return nil
}
