package bao

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeWithOptionsRejectsOversizedHeader(t *testing.T) {
	content := testContent(2 * ChunkSize)
	root, err := Hash(bytes.NewReader(content))
	require.NoError(t, err)

	encoded, err := Encode(content, false)
	require.NoError(t, err)

	var out bytes.Buffer
	r := bytes.NewReader(encoded)
	err = DecodeWithOptions(r, r, &out, root, DecodeOptions{MaxContentLength: ChunkSize})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecodeWithOptionsAllowsWithinLimit(t *testing.T) {
	content := testContent(2 * ChunkSize)
	root, err := Hash(bytes.NewReader(content))
	require.NoError(t, err)

	encoded, err := Encode(content, false)
	require.NoError(t, err)

	var out bytes.Buffer
	r := bytes.NewReader(encoded)
	err = DecodeWithOptions(r, r, &out, root, DecodeOptions{MaxContentLength: uint64(len(content))})
	require.NoError(t, err)
	require.Equal(t, content, out.Bytes())
}

func TestDecodeZeroLimitMeansUnbounded(t *testing.T) {
	content := testContent(3 * ChunkSize)
	root, err := Hash(bytes.NewReader(content))
	require.NoError(t, err)

	encoded, err := Encode(content, false)
	require.NoError(t, err)

	var out bytes.Buffer
	r := bytes.NewReader(encoded)
	require.NoError(t, Decode(r, r, &out, root))
	require.Equal(t, content, out.Bytes())
}
