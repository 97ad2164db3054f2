package bao

import (
	"io"
	"math/bits"
)

// Hash computes the root digest of r's entire content, streaming: it never
// buffers more than one chunk plus one hash per set bit of the running
// chunk count.
//
// The invariant driving the loop: after absorbing C complete chunks (C>=1),
// the stack holds one hash per 1-bit of C, most-significant at the bottom,
// ordered so that merging always happens at the top with the
// most-recently-finished subtree. A subtree's size is therefore never
// stored explicitly; it is implied by the subtree's position on the stack.
func Hash(r io.Reader) (Digest, error) {
	var stack []Digest
	var chunks uint64

	buf := make([]byte, 0, ChunkSize)
	readBuf := make([]byte, ChunkSize)

	for {
		n, err := io.ReadFull(r, readBuf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return Digest{}, err
		}
		if n == 0 {
			// No more input. buf holds between 0 and ChunkSize leftover
			// bytes, none of which have been committed to the stack yet.
			break
		}

		// We just confirmed more input exists beyond whatever buf already
		// held, so a full chunk buffered from a prior iteration is
		// definitely not the tree's right-most chunk and can be finalized
		// as an ordinary (non-root) chunk.
		if len(buf) >= ChunkSize {
			chunkHash, herr := hashChunk(buf[:ChunkSize], none)
			if herr != nil {
				return Digest{}, herr
			}
			chunks++
			stack = append(stack, chunkHash)
			target := bits.OnesCount64(chunks)
			for len(stack) > target {
				merged, herr := mergeTop(stack, none)
				if herr != nil {
					return Digest{}, herr
				}
				stack = stack[:len(stack)-2]
				stack = append(stack, merged)
			}
			buf = append(buf[:0], buf[ChunkSize:]...)
		}
		buf = append(buf, readBuf[:n]...)
	}

	if chunks == 0 {
		// Single-chunk root case, including the empty input.
		return hashChunk(buf, rootFinalization(uint64(len(buf))))
	}

	// The remaining bytes are always the right-most chunk, even for a
	// multiple-of-ChunkSize input: the last full chunk is only finalized
	// once more input is seen, so here buf still holds all ChunkSize bytes
	// of it and they are hashed as a chunk, never rolled into the stack.
	rightHash, err := hashChunk(buf, none)
	if err != nil {
		return Digest{}, err
	}
	contentLen := chunks*ChunkSize + uint64(len(buf))

	for len(stack) > 1 {
		left := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		var parentBytes [ParentSize]byte
		copy(parentBytes[:HashSize], left[:])
		copy(parentBytes[HashSize:], rightHash[:])
		merged, herr := hashParent(parentBytes[:], none)
		if herr != nil {
			return Digest{}, herr
		}
		rightHash = merged
	}

	var rootBytes [ParentSize]byte
	copy(rootBytes[:HashSize], stack[0][:])
	copy(rootBytes[HashSize:], rightHash[:])
	return hashParent(rootBytes[:], rootFinalization(contentLen))
}

// mergeTop merges the top two entries of stack (smallest subtree on top)
// into one parent hash, using f as the parent's finalization.
func mergeTop(stack []Digest, f finalization) (Digest, error) {
	left := stack[len(stack)-2]
	right := stack[len(stack)-1]
	var parentBytes [ParentSize]byte
	copy(parentBytes[:HashSize], left[:])
	copy(parentBytes[HashSize:], right[:])
	return hashParent(parentBytes[:], f)
}

// HashEncoded computes the root digest directly from an already-encoded
// form (or its tree_stream, in outboard mode), without re-hashing the
// content chunk by chunk: it only needs the header and, for multi-chunk
// content, the root parent node.
func HashEncoded(treeStream io.Reader, contentStream io.Reader) (Digest, error) {
	var header [HeaderSize]byte
	if err := readExact(treeStream, header[:]); err != nil {
		return Digest{}, err
	}
	n, err := decodeLen(header[:])
	if err != nil {
		return Digest{}, err
	}
	if n > ChunkSize {
		var parent [ParentSize]byte
		if err := readExact(treeStream, parent[:]); err != nil {
			return Digest{}, err
		}
		return hashParent(parent[:], rootFinalization(n))
	}
	chunk := make([]byte, n)
	if err := readExact(contentStream, chunk); err != nil {
		return Digest{}, err
	}
	return hashChunk(chunk, rootFinalization(n))
}
