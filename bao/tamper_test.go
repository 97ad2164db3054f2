package bao

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Invariant 5: flipping any single bit anywhere in an encoded form causes
// Decode (or DecodeSlice) to fail with a hash mismatch rather than silently
// producing different plaintext.
func TestBitFlipBreaksDecode(t *testing.T) {
	content := testContent(3*ChunkSize + 17)
	root, err := Hash(bytes.NewReader(content))
	require.NoError(t, err)

	encoded, err := Encode(content, false)
	require.NoError(t, err)

	// Exhaustively flipping every bit of a multi-kilobyte encoding is
	// wasteful; a handful of offsets spread across the header, the parent
	// region, and the chunk region exercises the same property cheaply.
	offsets := []int{0, HeaderSize - 1, HeaderSize, HeaderSize + ParentSize/2, len(encoded) / 2, len(encoded) - 1}
	for _, byteOffset := range offsets {
		for _, bit := range []uint{0, 7} {
			tampered := append([]byte(nil), encoded...)
			tampered[byteOffset] ^= 1 << bit

			var out bytes.Buffer
			r := bytes.NewReader(tampered)
			err := Decode(r, r, &out, root)

			require.Error(t, err, "byteOffset=%d bit=%d", byteOffset, bit)
			isExpected := errors.Is(err, ErrHashMismatch) || errors.Is(err, ErrShortRead)
			require.True(t, isExpected, "byteOffset=%d bit=%d unexpected error: %v", byteOffset, bit, err)
		}
	}
}

// The same property holds for DecodeSlice over a slice of the encoding.
func TestBitFlipBreaksDecodeSlice(t *testing.T) {
	content := testContent(5 * ChunkSize)
	root, err := Hash(bytes.NewReader(content))
	require.NoError(t, err)

	encoded, err := Encode(content, false)
	require.NoError(t, err)

	var sliceOut bytes.Buffer
	r := bytes.NewReader(encoded)
	require.NoError(t, Slice(r, r, &sliceOut, ChunkSize, 2*ChunkSize))
	original := sliceOut.Bytes()

	for _, byteOffset := range []int{0, HeaderSize, len(original) / 2, len(original) - 1} {
		tampered := append([]byte(nil), original...)
		tampered[byteOffset] ^= 0x01

		var out bytes.Buffer
		err := DecodeSlice(bytes.NewReader(tampered), &out, root, ChunkSize, 2*ChunkSize)
		require.Error(t, err, "byteOffset=%d", byteOffset)
	}
}

// A root hash supplied by the caller that does not match the content at all
// must also be rejected, even for well-formed encodings.
func TestWrongRootIsRejected(t *testing.T) {
	content := testContent(2*ChunkSize + 1)
	encoded, err := Encode(content, false)
	require.NoError(t, err)

	wrongRoot, err := Hash(bytes.NewReader(testContent(ChunkSize)))
	require.NoError(t, err)

	var out bytes.Buffer
	r := bytes.NewReader(encoded)
	err = Decode(r, r, &out, wrongRoot)
	require.ErrorIs(t, err, ErrHashMismatch)
}
