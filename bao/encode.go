package bao

// Encode builds the full encoded form of content: a little-endian length
// header followed by the pre-order tree, with each subtree's parent bytes
// written immediately before that subtree's own emission. In combined mode
// (outboard=false) chunk bytes are interleaved into the tree; in outboard
// mode they are omitted and must be supplied separately at decode time.
//
// This buffers the entire input and output in memory, the same simplifying
// choice the reference implementation makes (see spec.md §1); a streaming
// producer would instead write the tree in post-order and flip it to
// pre-order in a second pass, or use a worker per subtree, while producing
// byte-identical output.
func Encode(content []byte, outboard bool) ([]byte, error) {
	n := uint64(len(content))
	size, err := encodedSubtreeSize(n, outboard)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+size)
	header := encodeLen(n)
	out = append(out, header[:]...)

	_, encoded, err := encodeRecurse(content, rootFinalization(n), outboard)
	if err != nil {
		return nil, err
	}
	return append(out, encoded...), nil
}

// encodeRecurse returns the hash of the subtree covering buf, and its
// pre-order emission (empty for a chunk when outboard is set).
func encodeRecurse(buf []byte, f finalization, outboard bool) (Digest, []byte, error) {
	if uint64(len(buf)) <= ChunkSize {
		hash, err := hashChunk(buf, f)
		if err != nil {
			return Digest{}, nil, err
		}
		if outboard {
			return hash, nil, nil
		}
		return hash, buf, nil
	}

	llen := leftLen(uint64(len(buf)))
	leftHash, leftEncoded, err := encodeRecurse(buf[:llen], none, outboard)
	if err != nil {
		return Digest{}, nil, err
	}
	rightHash, rightEncoded, err := encodeRecurse(buf[llen:], none, outboard)
	if err != nil {
		return Digest{}, nil, err
	}

	var node [ParentSize]byte
	copy(node[:HashSize], leftHash[:])
	copy(node[HashSize:], rightHash[:])

	hash, err := hashParent(node[:], f)
	if err != nil {
		return Digest{}, nil, err
	}

	encoded := make([]byte, 0, ParentSize+len(leftEncoded)+len(rightEncoded))
	encoded = append(encoded, node[:]...)
	encoded = append(encoded, leftEncoded...)
	encoded = append(encoded, rightEncoded...)
	return hash, encoded, nil
}
