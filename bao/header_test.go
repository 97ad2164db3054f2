package bao

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeLenRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, ChunkSize, ChunkSize + 1, 1 << 40}
	for _, n := range cases {
		buf := encodeLen(n)
		got, err := decodeLen(buf[:])
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestDecodeLenRejectsWrongLength(t *testing.T) {
	_, err := decodeLen(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrShortRead)

	_, err = decodeLen(make([]byte, HeaderSize+1))
	require.ErrorIs(t, err, ErrShortRead)
}

func TestReadExactRejectsShortStream(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3})
	buf := make([]byte, HeaderSize)
	err := readExact(r, buf)
	require.ErrorIs(t, err, ErrShortRead)
}

func TestReadExactRejectsEmptyStream(t *testing.T) {
	r := bytes.NewReader(nil)
	buf := make([]byte, ParentSize)
	err := readExact(r, buf)
	require.ErrorIs(t, err, ErrShortRead)
}

func TestReadExactSucceedsOnExactLength(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3, 4})
	buf := make([]byte, 4)
	require.NoError(t, readExact(r, buf))
	require.Equal(t, []byte{1, 2, 3, 4}, buf)
}
