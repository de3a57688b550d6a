package store

import (
	"bytes"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/parse"
)

// Write encodes node with opts and writes it to w compressed with codec.
// Encoding errors are returned as is; anything failing afterwards is a
// *CompressionError.
func Write(w io.Writer, node *ir.Node, codec Codec, opts ...encode.EncodeOption) error {
	d, err := encode.Marshal(node, opts...)
	if err != nil {
		return err
	}
	zw, err := NewWriter(w, codec)
	if err != nil {
		return err
	}
	if _, err := zw.Write(d); err != nil {
		zw.Close()
		return &CompressionError{Codec: codec, Op: "compress", Err: err}
	}
	if err := zw.Close(); err != nil {
		return &CompressionError{Codec: codec, Op: "compress", Err: err}
	}
	if debug.Store() {
		debug.Logf("wrote %d bytes with %s", len(d), codec)
	}
	return nil
}

// Read decompresses r with codec and parses the result with opts.
func Read(r io.Reader, codec Codec, opts ...parse.ParseOption) (*ir.Node, error) {
	zr, err := NewReader(r, codec)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	d, err := io.ReadAll(zr)
	if err != nil {
		return nil, &CompressionError{Codec: codec, Op: "decompress", Err: err}
	}
	if debug.Store() {
		debug.Logf("read %d bytes with %s", len(d), codec)
	}
	return parse.Parse(d, opts...)
}

// WriteFile atomically replaces path with node compressed with codec.
// Either the previous file or the complete new one is visible at any time.
func WriteFile(path string, node *ir.Node, codec Codec, opts ...encode.EncodeOption) error {
	buf := bytes.NewBuffer(nil)
	if err := Write(buf, node, codec, opts...); err != nil {
		return err
	}
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return err
	}
	defer f.Cleanup()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return err
	}
	return f.CloseAtomicallyReplace()
}

// ReadFile reads path, choosing the codec from its extension.
func ReadFile(path string, opts ...parse.ParseOption) (*ir.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, CodecForPath(path), opts...)
}
