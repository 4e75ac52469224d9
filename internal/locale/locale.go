// Package locale loads flat key-value translation files and compares their key sets.
//
// Only the top-level keys of a locale document matter. Values are decoded as raw JSON and
// never inspected, so nested objects count as a single key.
package locale

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrNotObject is returned when a locale document is valid JSON but not an object.
	ErrNotObject = errors.New("top-level JSON value is not an object")
	// ErrEmpty is returned for a file with no JSON content at all.
	ErrEmpty = errors.New("empty document")
	// ErrInvalidUTF8 is returned for content that is not UTF-8 encoded.
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// KeySet is the set of top-level keys of one locale file.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from a list of keys.
func NewKeySet(keys ...string) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = struct{}{}
	}
	return ks
}

// Has reports whether key is in the set.
func (ks KeySet) Has(key string) bool {
	_, ok := ks[key]
	return ok
}

// Len returns the number of keys.
func (ks KeySet) Len() int {
	return len(ks)
}

// Sorted returns the keys in lexicographic order.
func (ks KeySet) Sorted() []string {
	out := make([]string, 0, len(ks))
	for k := range ks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Missing returns the keys of ks that are absent from other, sorted.
// The result is never nil.
func (ks KeySet) Missing(other KeySet) []string {
	out := make([]string, 0)
	for k := range ks {
		if !other.Has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Load reads the locale file at path and returns its top-level keys.
// The file handle is released on every return path.
func Load(path string) (KeySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a locale document held in memory.
func Parse(data []byte) (KeySet, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	// The decoder would silently replace bad bytes with U+FFFD.
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	if trimmed[0] != '{' {
		var v interface{}
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return nil, ErrNotObject
	}

	var doc map[string]jsoniter.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	ks := make(KeySet, len(doc))
	for k := range doc {
		ks[k] = struct{}{}
	}
	return ks, nil
}

// Discover lists the *.json files directly inside dir, excluding the reference file.
// Names are returned relative to dir, sorted.
func Discover(dir, reference string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	refBase := filepath.Base(reference)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := filepath.Base(m)
		if name == refBase {
			continue
		}
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// IsLocaleFile reports whether name looks like a locale document.
func IsLocaleFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}
