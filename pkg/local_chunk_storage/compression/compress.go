// Package compression decodes the compression framing of Anvil chunk payload
// records. A record starts with a one-byte scheme tag followed by the NBT
// bytes in that scheme's framing.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Scheme is a compression scheme tag as stored on disk.
type Scheme byte

const (
	// SchemeGzip is the legacy gzip-framed scheme.
	SchemeGzip Scheme = 1
	// SchemeZlib is the zlib-framed scheme used by modern region files.
	SchemeZlib Scheme = 2
	// SchemeNone marks an uncompressed payload.
	SchemeNone Scheme = 3
)

// UnknownSchemeError is returned for a scheme tag outside the three known
// values. The offending tag is preserved for diagnostics.
type UnknownSchemeError struct {
	Scheme Scheme
}

// Error implements the error interface.
func (e UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown compression scheme number of %d", e.Scheme)
}

// Decompress decodes a tagged payload record into plain NBT bytes. The first
// byte of data is the scheme tag, the rest is the compressed or raw stream.
//
// Unknown tags fail with UnknownSchemeError; they are never passed through.
// For SchemeNone the returned slice aliases data.
func Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("read compression scheme: %w", io.ErrUnexpectedEOF)
	}

	scheme, rest := Scheme(data[0]), data[1:]

	switch scheme {
	case SchemeGzip:
		z, err := gzip.NewReader(bytes.NewReader(rest))
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}

		res, err := io.ReadAll(z)
		if err != nil {
			return nil, fmt.Errorf("decompress gzip stream: %w", err)
		}

		return res, nil
	case SchemeZlib:
		z, err := zlib.NewReader(bytes.NewReader(rest))
		if err != nil {
			return nil, fmt.Errorf("open zlib stream: %w", err)
		}

		res, err := io.ReadAll(z)
		if err != nil {
			return nil, fmt.Errorf("decompress zlib stream: %w", err)
		}

		return res, nil
	case SchemeNone:
		return rest, nil
	default:
		return nil, UnknownSchemeError{Scheme: scheme}
	}
}
