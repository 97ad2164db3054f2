package bao

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestStringParseRoundTrip(t *testing.T) {
	root, err := Hash(bytes.NewReader(testContent(5 * ChunkSize)))
	require.NoError(t, err)

	s := root.String()
	require.Len(t, s, HashSize*2)
	require.Equal(t, strings.ToLower(s), s)

	parsed, err := ParseDigest(s)
	require.NoError(t, err)
	require.Equal(t, root, parsed)
	require.True(t, root.Equal(parsed))
}

func TestParseDigestRejectsBadLength(t *testing.T) {
	_, err := ParseDigest("deadbeef")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseDigestRejectsNonHex(t *testing.T) {
	_, err := ParseDigest(strings.Repeat("zz", HashSize))
	require.Error(t, err)
}

func TestDigestEqualDistinguishesContent(t *testing.T) {
	a, err := Hash(bytes.NewReader(testContent(ChunkSize)))
	require.NoError(t, err)
	b, err := Hash(bytes.NewReader(testContent(ChunkSize + 1)))
	require.NoError(t, err)
	require.False(t, a.Equal(b))
	require.True(t, a.Equal(a))
}
