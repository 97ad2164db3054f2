package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baoverify/bao/bao"
	"github.com/baoverify/bao/storagedriver/filesystem"
)

func newTestBlobStore(t *testing.T) *BlobStore {
	t.Helper()
	driver, err := filesystem.New(filesystem.DriverParameters{RootDirectory: t.TempDir()})
	require.NoError(t, err)
	return NewBlobStore(driver)
}

func testContent(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		content[i] = byte(i)
	}
	return content
}

func TestPutThenWriteToRoundTrips(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	content := testContent(3*bao.ChunkSize + 17)

	root, err := bs.Put(ctx, content)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, bs.WriteTo(ctx, root, &out, bao.DecodeOptions{}))
	require.Equal(t, content, out.Bytes())
}

func TestStatReportsContentLength(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	content := testContent(100)

	root, err := bs.Put(ctx, content)
	require.NoError(t, err)

	size, err := bs.Stat(ctx, root)
	require.NoError(t, err)
	require.Equal(t, int64(100), size)
}

func TestWriteToRejectsTamperedContent(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	content := testContent(2 * bao.ChunkSize)

	root, err := bs.Put(ctx, content)
	require.NoError(t, err)

	corrupted := append([]byte(nil), content...)
	corrupted[0] ^= 0xff
	require.NoError(t, bs.driver.PutContent(contentPath(root), corrupted))

	var out bytes.Buffer
	err = bs.WriteTo(ctx, root, &out, bao.DecodeOptions{})
	require.ErrorIs(t, err, bao.ErrHashMismatch)
}

func TestWriteToEnforcesMaxContentLength(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	content := testContent(2 * bao.ChunkSize)

	root, err := bs.Put(ctx, content)
	require.NoError(t, err)

	var out bytes.Buffer
	err = bs.WriteTo(ctx, root, &out, bao.DecodeOptions{MaxContentLength: bao.ChunkSize})
	require.ErrorIs(t, err, bao.ErrInvalidArgument)
}

func TestWriteSliceToThenDecodeSliceRoundTrips(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	content := testContent(5 * bao.ChunkSize)

	root, err := bs.Put(ctx, content)
	require.NoError(t, err)

	var sliceBuf bytes.Buffer
	require.NoError(t, bs.WriteSliceTo(ctx, root, &sliceBuf, bao.ChunkSize, bao.ChunkSize))

	var out bytes.Buffer
	require.NoError(t, bao.DecodeSlice(bytes.NewReader(sliceBuf.Bytes()), &out, root, bao.ChunkSize, bao.ChunkSize))
	require.Equal(t, content[bao.ChunkSize:2*bao.ChunkSize], out.Bytes())
}

func TestDeleteThenStatFails(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	content := testContent(10)

	root, err := bs.Put(ctx, content)
	require.NoError(t, err)
	require.NoError(t, bs.Delete(ctx, root))

	_, err = bs.Stat(ctx, root)
	require.Error(t, err)
}

func TestDeleteOfMissingBlobIsNotAnError(t *testing.T) {
	ctx := context.Background()
	bs := newTestBlobStore(t)
	var root bao.Digest
	require.NoError(t, bs.Delete(ctx, root))
}
