// Package client wraps an http.Client with the two read paths
// registry/handlers exposes: fetching a whole verified blob, and fetching
// and verifying a sliced byte range without downloading the rest.
package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/baoverify/bao/bao"
	"github.com/baoverify/bao/baodigest"
)

// Client fetches bao blobs from a registry/handlers server at BaseURL.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New constructs a Client against baseURL, using http.DefaultClient.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) blobURL(d baodigest.Digest, query url.Values) string {
	u := fmt.Sprintf("%s/blobs/%s", c.BaseURL, url.PathEscape(d.String()))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) doGet(u string) (*http.Response, error) {
	resp, err := c.httpClient().Get(u)
	if err != nil {
		return nil, fmt.Errorf("client: requesting %s: %w", u, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("client: %s returned status %d", u, resp.StatusCode)
	}
	return resp, nil
}

// GetBlob fetches the blob identified by root and writes the plaintext the
// server returns to out. The server's decode verifies every chunk against
// root before it leaves the response body; GetBlob itself performs no
// verification and copies the body to out as received.
func (c *Client) GetBlob(root bao.Digest, out io.Writer) error {
	resp, err := c.doGet(c.blobURL(baodigest.NewDigest(root), nil))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("client: reading blob body: %w", err)
	}
	return nil
}

// GetBlobRange fetches the combined-encoding slice for [start, start+length)
// of the blob identified by root, and runs bao.DecodeSlice against root
// before writing the verified range to out. The server that produced the
// slice is treated as an untrusted producer: DecodeSlice is what actually
// proves the returned bytes belong to root.
func (c *Client) GetBlobRange(root bao.Digest, start, length uint64, out io.Writer) error {
	query := url.Values{
		"start": {strconv.FormatUint(start, 10)},
		"len":   {strconv.FormatUint(length, 10)},
	}
	resp, err := c.doGet(c.blobURL(baodigest.NewDigest(root), query))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := bao.DecodeSlice(resp.Body, out, root, start, length); err != nil {
		return fmt.Errorf("client: verifying slice: %w", err)
	}
	return nil
}

// PutBlob uploads content, asserting it hashes to root, and returns an
// error if the server's computed digest does not agree.
func (c *Client) PutBlob(root bao.Digest, content io.Reader) error {
	d := baodigest.NewDigest(root)
	req, err := http.NewRequest(http.MethodPut, c.blobURL(d, nil), content)
	if err != nil {
		return fmt.Errorf("client: building request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("client: uploading blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("client: upload of %s returned status %d", d, resp.StatusCode)
	}
	return nil
}
