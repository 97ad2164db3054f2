package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baoverify/bao/bao"
	"github.com/baoverify/bao/baodigest"
	"github.com/baoverify/bao/registry/storage"
	"github.com/baoverify/bao/storagedriver/filesystem"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	driver, err := filesystem.New(filesystem.DriverParameters{RootDirectory: t.TempDir()})
	require.NoError(t, err)
	return NewApp(storage.NewBlobStore(driver), 0)
}

func testContent(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		content[i] = byte(i)
	}
	return content
}

func TestPutThenGetRoundTrips(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	content := testContent(3 * bao.ChunkSize)
	root, err := bao.Hash(bytes.NewReader(content))
	require.NoError(t, err)
	d := baodigest.NewDigest(root)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/blobs/"+d.String(), bytes.NewReader(content))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	getResp, err := http.Get(srv.URL + "/blobs/" + d.String())
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(getResp.Body)
	require.NoError(t, err)
	require.Equal(t, content, buf.Bytes())
}

func TestPutRejectsMismatchedDigest(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	content := testContent(100)
	wrongRoot, err := bao.Hash(bytes.NewReader(testContent(200)))
	require.NoError(t, err)
	d := baodigest.NewDigest(wrongRoot)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/blobs/"+d.String(), bytes.NewReader(content))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSliceServesRequestedRange(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	content := testContent(5 * bao.ChunkSize)
	root, err := bao.Hash(bytes.NewReader(content))
	require.NoError(t, err)
	d := baodigest.NewDigest(root)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/blobs/"+d.String(), bytes.NewReader(content))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	putResp.Body.Close()

	url := srv.URL + "/blobs/" + d.String() + "?start=" + strconv.Itoa(bao.ChunkSize) + "&len=" + strconv.Itoa(bao.ChunkSize)
	sliceResp, err := http.Get(url)
	require.NoError(t, err)
	defer sliceResp.Body.Close()
	require.Equal(t, http.StatusOK, sliceResp.StatusCode)

	sliceBuf := new(bytes.Buffer)
	_, err = sliceBuf.ReadFrom(sliceResp.Body)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, bao.DecodeSlice(bytes.NewReader(sliceBuf.Bytes()), &out, root, bao.ChunkSize, bao.ChunkSize))
	require.Equal(t, content[bao.ChunkSize:2*bao.ChunkSize], out.Bytes())
}

func TestGetUnknownDigestFails(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	var zero bao.Digest
	d := baodigest.NewDigest(zero)
	resp, err := http.Get(srv.URL + "/blobs/" + d.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NotEqual(t, http.StatusOK, resp.StatusCode)
}
