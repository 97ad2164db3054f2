package bao

import (
	"encoding/binary"
	"fmt"
	"io"
)

// encodeLen packs a content length into the little-endian 8-byte header
// that prefixes every encoded form.
func encodeLen(n uint64) [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return buf
}

// decodeLen unpacks the 8-byte header. buf must be exactly HeaderSize bytes;
// callers are responsible for having read exactly that many (see
// readExact), since a short read here would silently admit an encoding
// whose framed length disagrees with the length actually mixed into the
// root finalization.
func decodeLen(buf []byte) (uint64, error) {
	if len(buf) != HeaderSize {
		return 0, fmt.Errorf("%w: header must be %d bytes, got %d", ErrShortRead, HeaderSize, len(buf))
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// readExact reads exactly len(buf) bytes from r, or returns ErrShortRead.
// Every node read in this package goes through this helper: a convenience
// wrapper that treats a short read followed by EOF as success would be a
// reverse-collision bug, not an optimization.
func readExact(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return fmt.Errorf("%w: expected %d bytes: %v", ErrShortRead, len(buf), err)
		}
		return err
	}
	return nil
}
