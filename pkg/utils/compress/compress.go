// Package compress wraps gzip for the audit payloads sent over the bus.
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/utils/safe"
)

// Gzip compresses data at the default level.
func Gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, goerr.Wrap(err, "failed to compress data")
	}
	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize compressed data")
	}
	return buf.Bytes(), nil
}

// Gunzip decompresses gzip data.
func Gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open compressed data")
	}
	defer safe.Close(r)

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decompress data")
	}
	return out, nil
}
