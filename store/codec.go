package store

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Codec names a compression format for persisted documents.
type Codec int

const (
	None Codec = iota
	Gzip
	Zstd
	Snappy
	LZ4
)

var codecNames = map[Codec]string{
	None:   "none",
	Gzip:   "gzip",
	Zstd:   "zstd",
	Snappy: "snappy",
	LZ4:    "lz4",
}

var codecExts = map[Codec]string{
	None:   "",
	Gzip:   ".gz",
	Zstd:   ".zst",
	Snappy: ".sz",
	LZ4:    ".lz4",
}

func (c Codec) String() string {
	if s, ok := codecNames[c]; ok {
		return s
	}
	return fmt.Sprintf("codec(%d)", int(c))
}

// Ext is the file name extension used for c, including the dot.
func (c Codec) Ext() string {
	return codecExts[c]
}

func (c Codec) MarshalText() ([]byte, error) {
	if _, ok := codecNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrCodec, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Codec) UnmarshalText(d []byte) error {
	v, err := ParseCodec(string(d))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCodec accepts a codec name, case insensitively, or its extension.
func ParseCodec(s string) (Codec, error) {
	s = strings.ToLower(s)
	for c, name := range codecNames {
		if s == name || (s != "" && s == codecExts[c]) {
			return c, nil
		}
	}
	if s == "" {
		return None, nil
	}
	return None, fmt.Errorf("%w: %q", ErrCodec, s)
}

// CodecForPath infers the codec from the extension of path. Unknown
// extensions mean None.
func CodecForPath(path string) Codec {
	ext := strings.ToLower(filepath.Ext(path))
	for c, e := range codecExts {
		if e != "" && e == ext {
			return c
		}
	}
	return None
}
