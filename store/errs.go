package store

import (
	"errors"
	"fmt"
)

var (
	ErrCompression = errors.New("compression error")
	ErrCodec       = errors.New("unknown codec")
)

// CompressionError reports a failure compressing or decompressing a
// persisted document. Op is "compress" or "decompress".
type CompressionError struct {
	Codec Codec
	Op    string
	Err   error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrCompression, e.Op, e.Codec, e.Err)
}

func (e *CompressionError) Unwrap() []error {
	return []error{ErrCompression, e.Err}
}
