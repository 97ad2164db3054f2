// Package storage implements a bao blob store on top of a
// storagedriver.StorageDriver: it is the component that turns the bao codec
// into a durable, content-addressed service. A blob is written once, hashed
// and outboard-encoded on the way in, and only ever served back out through
// Decode or Slice. Decode catches a byte corrupted at rest before it
// reaches a caller; a slice is not verified here, and corruption in it is
// caught by the caller's DecodeSlice.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/baoverify/bao/bao"
	"github.com/baoverify/bao/internal/dcontext"
	"github.com/baoverify/bao/internal/uuid"
	"github.com/baoverify/bao/storagedriver"
)

// BlobStore stores bao blobs behind a storagedriver.StorageDriver, keyed by
// their root digest. Each blob is kept outboard: the tree of parent hashes
// and the raw content live at separate paths. A range request
// (WriteSliceTo) still loads both the whole tree and the whole content
// before running Slice.
type BlobStore struct {
	driver storagedriver.StorageDriver
}

// NewBlobStore constructs a BlobStore backed by driver.
func NewBlobStore(driver storagedriver.StorageDriver) *BlobStore {
	return &BlobStore{driver: driver}
}

func basePath(d bao.Digest) string {
	hex := d.String()
	return fmt.Sprintf("/blobs/%s/%s", hex[:2], hex)
}

func treePath(d bao.Digest) string {
	return basePath(d) + "/tree"
}

func contentPath(d bao.Digest) string {
	return basePath(d) + "/content"
}

// Put hashes and outboard-encodes content, stores both the tree and the
// content under the resulting digest, and returns that digest.
//
// The tree and content are first written to a staging path named by a
// random upload ID, then moved into their final digest-addressed location.
// This keeps a blob that is readable at its final path always complete: a
// reader can never observe a partially written tree or content file there.
func (bs *BlobStore) Put(ctx context.Context, content []byte) (bao.Digest, error) {
	root, err := bao.Hash(bytes.NewReader(content))
	if err != nil {
		return bao.Digest{}, fmt.Errorf("storage: hashing blob: %w", err)
	}

	tree, err := bao.Encode(content, true)
	if err != nil {
		return bao.Digest{}, fmt.Errorf("storage: encoding blob: %w", err)
	}

	uploadID := uuid.NewString()
	stagingTreePath := "/uploads/" + uploadID + "/tree"
	stagingContentPath := "/uploads/" + uploadID + "/content"

	if err := bs.driver.PutContent(stagingTreePath, tree); err != nil {
		return bao.Digest{}, fmt.Errorf("storage: staging tree: %w", err)
	}
	if err := bs.driver.PutContent(stagingContentPath, content); err != nil {
		return bao.Digest{}, fmt.Errorf("storage: staging content: %w", err)
	}

	if err := bs.driver.Move(stagingTreePath, treePath(root)); err != nil {
		return bao.Digest{}, fmt.Errorf("storage: committing tree: %w", err)
	}
	if err := bs.driver.Move(stagingContentPath, contentPath(root)); err != nil {
		return bao.Digest{}, fmt.Errorf("storage: committing content: %w", err)
	}
	if err := bs.driver.Delete("/uploads/" + uploadID); err != nil {
		if _, ok := err.(storagedriver.PathNotFoundError); !ok {
			dcontext.GetLogger(ctx).Warnf("storage: cleaning up upload staging dir %s: %v", uploadID, err)
		}
	}

	dcontext.GetLogger(ctx).Debugf("storage: put blob %s (%d bytes)", root, len(content))
	return root, nil
}

// Stat reports whether root is stored, returning its content length.
func (bs *BlobStore) Stat(ctx context.Context, root bao.Digest) (int64, error) {
	fi, err := bs.driver.Stat(contentPath(root))
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// WriteTo decodes and verifies the blob identified by root, writing the
// verified plaintext to out. opts bounds the content length accepted from
// the stored header before any node is read, guarding a caller that streams
// the result straight to an HTTP response.
func (bs *BlobStore) WriteTo(ctx context.Context, root bao.Digest, out io.Writer, opts bao.DecodeOptions) error {
	tree, err := bs.driver.GetContent(treePath(root))
	if err != nil {
		return fmt.Errorf("storage: reading tree: %w", err)
	}
	content, err := bs.driver.GetContent(contentPath(root))
	if err != nil {
		return fmt.Errorf("storage: reading content: %w", err)
	}

	if err := bao.DecodeWithOptions(bytes.NewReader(tree), bytes.NewReader(content), out, root, opts); err != nil {
		dcontext.GetLogger(ctx).Errorf("storage: decode of blob %s failed verification: %v", root, err)
		return err
	}
	return nil
}

// WriteSliceTo writes a self-contained combined-encoding slice of the blob
// identified by root, covering [start, start+length), to out. The slice
// itself is unverified transport output; a caller or client is expected to
// run it back through bao.DecodeSlice against root.
func (bs *BlobStore) WriteSliceTo(ctx context.Context, root bao.Digest, out io.Writer, start, length uint64) error {
	tree, err := bs.driver.GetContent(treePath(root))
	if err != nil {
		return fmt.Errorf("storage: reading tree: %w", err)
	}
	content, err := bs.driver.GetContent(contentPath(root))
	if err != nil {
		return fmt.Errorf("storage: reading content: %w", err)
	}

	return bao.Slice(bytes.NewReader(tree), bytes.NewReader(content), out, start, length)
}

// Delete removes both the tree and content stored under root. It is not an
// error for root to already be absent.
func (bs *BlobStore) Delete(ctx context.Context, root bao.Digest) error {
	if err := bs.driver.Delete(basePath(root)); err != nil {
		if _, ok := err.(storagedriver.PathNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("storage: deleting blob %s: %w", root, err)
	}
	return nil
}
