package client

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baoverify/bao/bao"
	"github.com/baoverify/bao/registry/handlers"
	"github.com/baoverify/bao/registry/storage"
	"github.com/baoverify/bao/storagedriver/filesystem"
	"github.com/baoverify/bao/test"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	driver, err := filesystem.New(filesystem.DriverParameters{RootDirectory: t.TempDir()})
	require.NoError(t, err)
	app := handlers.NewApp(storage.NewBlobStore(driver), 0)
	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func testContent(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		content[i] = byte(i)
	}
	return content
}

func TestPutBlobThenGetBlobRoundTrips(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	content := testContent(4 * bao.ChunkSize)
	root, err := bao.Hash(bytes.NewReader(content))
	require.NoError(t, err)

	require.NoError(t, c.PutBlob(root, bytes.NewReader(content)))

	var out bytes.Buffer
	require.NoError(t, c.GetBlob(root, &out))
	require.Equal(t, content, out.Bytes())
}

func TestGetBlobRangeVerifiesAndReturnsRequestedBytes(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	content := testContent(6 * bao.ChunkSize)
	root, err := bao.Hash(bytes.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, c.PutBlob(root, bytes.NewReader(content)))

	var out bytes.Buffer
	require.NoError(t, c.GetBlobRange(root, 2*bao.ChunkSize, bao.ChunkSize, &out))
	require.Equal(t, content[2*bao.ChunkSize:3*bao.ChunkSize], out.Bytes())
}

func TestPutBlobRejectsIncorrectRoot(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	content := testContent(10)
	wrongRoot, err := bao.Hash(bytes.NewReader(testContent(20)))
	require.NoError(t, err)

	require.Error(t, c.PutBlob(wrongRoot, bytes.NewReader(content)))
}

func TestGetBlobSurfacesServerErrorStatus(t *testing.T) {
	content := testContent(10)
	root, err := bao.Hash(bytes.NewReader(content))
	require.NoError(t, err)
	d := root.String()

	mockServer := httptest.NewServer(test.NewHandler(test.RequestResponseMap{
		{
			Request: test.Request{
				Method: http.MethodGet,
				Route:  "/blobs/bao:" + d,
			},
			Responses: []test.Response{
				{StatusCode: http.StatusServiceUnavailable},
			},
		},
	}))
	defer mockServer.Close()

	c := New(mockServer.URL)
	var out bytes.Buffer
	err = c.GetBlob(root, &out)
	require.Error(t, err)
}
