package loader

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// encodingOf maps a file name to the content encoding of its bytes. Names
// without a compression extension are read as they are.
func encodingOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return "gzip"
	case ".zz", ".zlib":
		return "deflate"
	case ".br":
		return "br"
	default:
		return ""
	}
}

func newDecoder(enc string, r io.Reader) (io.ReadCloser, error) {
	switch enc {
	case "":
		return io.NopCloser(r), nil
	case "gzip":
		return gzip.NewReader(r)
	case "deflate":
		return zlib.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

func readAllEncoded(enc string, r io.Reader) ([]byte, error) {
	d, err := newDecoder(enc, r)
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Warn("could not close decoder", "enc", enc, "err", err)
		}
	}()
	return io.ReadAll(d)
}
