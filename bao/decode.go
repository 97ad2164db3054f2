package bao

import (
	"fmt"
	"io"
)

// DecodeOptions configures an optional call to DecodeWithOptions.
type DecodeOptions struct {
	// MaxContentLength bounds the content length a decoder will accept from
	// the encoded form's header, before any node is read or hashed. Zero
	// means no limit. Callers that decode from an untrusted network source
	// (such as the HTTP handlers in registry/handlers) should set this so a
	// hostile header claiming an enormous length fails immediately instead
	// of driving unbounded work downstream.
	MaxContentLength uint64
}

// Decode verifies an encoded form against root and writes the verified
// plaintext to out. In combined mode, pass the same reader for treeStream
// and contentStream (both read the encoded stream). In outboard mode, pass
// the outboard tree stream as treeStream and the separate content stream as
// contentStream.
//
// No byte is written to out before the chunk containing it has been
// verified against its expected hash: a tampered byte anywhere in the tree
// is detected before any output downstream of it is exposed.
func Decode(treeStream, contentStream io.Reader, out io.Writer, root Digest) error {
	return DecodeWithOptions(treeStream, contentStream, out, root, DecodeOptions{})
}

// DecodeWithOptions is Decode with an additional MaxContentLength bound; see
// DecodeOptions.
func DecodeWithOptions(treeStream, contentStream io.Reader, out io.Writer, root Digest, opts DecodeOptions) error {
	if treeStream == nil || contentStream == nil {
		return ErrMissingOutboard
	}
	var header [HeaderSize]byte
	if err := readExact(treeStream, header[:]); err != nil {
		return err
	}
	n, err := decodeLen(header[:])
	if err != nil {
		return err
	}
	if opts.MaxContentLength > 0 && n > opts.MaxContentLength {
		return fmt.Errorf("%w: content length %d exceeds maximum %d", ErrInvalidArgument, n, opts.MaxContentLength)
	}
	return decodeRecurse(treeStream, contentStream, out, root, n, rootFinalization(n))
}

func decodeRecurse(treeStream, contentStream io.Reader, out io.Writer, hash Digest, contentLen uint64, f finalization) error {
	if contentLen <= ChunkSize {
		chunk := make([]byte, contentLen)
		if err := readExact(contentStream, chunk); err != nil {
			return err
		}
		if err := verifyChunk(chunk, f, hash); err != nil {
			return err
		}
		if _, err := out.Write(chunk); err != nil {
			return fmt.Errorf("bao: writing decoded chunk: %w", err)
		}
		return nil
	}

	var parent [ParentSize]byte
	if err := readExact(treeStream, parent[:]); err != nil {
		return err
	}
	if err := verifyParent(parent[:], f, hash); err != nil {
		return err
	}

	var leftHash, rightHash Digest
	copy(leftHash[:], parent[:HashSize])
	copy(rightHash[:], parent[HashSize:])

	llen := leftLen(contentLen)
	if err := decodeRecurse(treeStream, contentStream, out, leftHash, llen, none); err != nil {
		return err
	}
	return decodeRecurse(treeStream, contentStream, out, rightHash, contentLen-llen, none)
}
