// Package persist writes canonical schemas and native renderings to disk.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/siegeai/siegeschema/schema"
)

var (
	ErrOutputExists  = errors.New("a file already exists at the output path")
	ErrUnknownFormat = errors.New("unknown output format")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext is the file extension, dot included, for documents in format f.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Indent is the JSON indentation of schema files on disk.
const Indent = "    "

// Encode renders s in format f with a trailing newline.
func Encode(s schema.Schema, f Format) ([]byte, error) {
	var (
		bs  []byte
		err error
	)
	switch f {
	case FormatJSON, "":
		bs, err = schema.MarshalIndent(s, Indent)
	case FormatYAML:
		bs, err = schema.MarshalYAML(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}
	if len(bs) > 0 && bs[len(bs)-1] != '\n' {
		bs = append(bs, '\n')
	}
	return bs, nil
}

type Options struct {
	// Overwrite allows replacing an existing regular file.
	Overwrite bool
	// Name is the file name used when the output is a directory. Empty means
	// a timestamped schema-YYYY-MM-DD-HHMMSS file.
	Name string
	// Ext is the extension of the timestamped name. Defaults to ".json".
	Ext string
	// Now is used for the timestamped name. Defaults to time.Now.
	Now func() time.Time
}

// TimestampName returns the default file name for a schema written at t.
func TimestampName(t time.Time, ext string) string {
	if ext == "" {
		ext = ".json"
	}
	return "schema-" + t.Format("2006-01-02-150405") + ext
}

// Resolve decides where Save would write for output. It performs no writes.
func Resolve(output string, opts Options) (string, error) {
	info, err := os.Stat(output)
	switch {
	case err == nil && info.IsDir():
		name := opts.Name
		if name == "" {
			now := time.Now
			if opts.Now != nil {
				now = opts.Now
			}
			name = TimestampName(now(), opts.Ext)
		}
		return resolveFile(filepath.Join(output, name), opts)
	case err == nil:
		return resolveFile(output, opts)
	case errors.Is(err, os.ErrNotExist):
		return output, nil
	default:
		return "", err
	}
}

func resolveFile(path string, opts Options) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, nil
	} else if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: is a directory", path)
	}
	if !opts.Overwrite {
		return "", fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	return path, nil
}

// Save writes data to output and returns the path written. An existing
// directory receives a new file inside it; missing parent directories are
// created.
func Save(data []byte, output string, opts Options) (string, error) {
	path, err := Resolve(output, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveSchema encodes s in format f and saves it.
func SaveSchema(s schema.Schema, f Format, output string, opts Options) (string, error) {
	bs, err := Encode(s, f)
	if err != nil {
		return "", err
	}
	if opts.Ext == "" {
		opts.Ext = f.Ext()
	}
	return Save(bs, output, opts)
}
