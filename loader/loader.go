// Package loader reads JSON documents from disk for inference.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/valyala/fastjson"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrNoDocuments   = errors.New("no JSON documents found")
)

// ReadFile returns the decoded bytes of the document at path, decompressing
// .gz and .zz files.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bs, err := readAllEncoded(encodingOf(path), f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(bs))) == 0 {
		return nil, fmt.Errorf("read %s: %w", path, ErrEmptyDocument)
	}
	return bs, nil
}

// Load reads and parses the document at path.
func Load(path string) (*fastjson.Value, error) {
	bs, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := fastjson.ParseBytes(bs)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// IsDocument reports whether name looks like a JSON document Discover should
// pick up.
func IsDocument(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range []string{".json", ".json.gz", ".json.zz"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Discover expands paths into document files. Files are kept as given;
// directories are walked recursively and contribute their documents in
// lexical order. Duplicates are dropped.
func Discover(paths ...string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsDocument(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoDocuments
	}
	return out, nil
}
