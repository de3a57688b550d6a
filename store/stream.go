package store

import (
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// NewWriter returns a writer compressing to w with codec. Close flushes
// the compressed stream but does not close w.
func NewWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case None:
		return nopCloseWriter{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, &CompressionError{Codec: codec, Op: "compress", Err: err}
		}
		return zw, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCodec, codec)
}

// NewReader returns a reader decompressing r with codec. Close releases
// the decompressor but does not close r.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, &CompressionError{Codec: codec, Op: "decompress", Err: err}
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, &CompressionError{Codec: codec, Op: "decompress", Err: err}
		}
		return zr.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCodec, codec)
}

type nopCloseWriter struct{ w io.Writer }

func (w nopCloseWriter) Write(p []byte) (int, error) { return w.w.Write(p) }
func (w nopCloseWriter) Close() error                { return nil }
