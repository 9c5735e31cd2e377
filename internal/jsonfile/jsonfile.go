// Package jsonfile reads and writes the flat per-locale JSON dictionaries:
// a single-level mapping from key to translated string, one file per
// locale, with key order preserved.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrInputNotFound wraps a missing JSON source file.
var ErrInputNotFound = errors.New("input file not found")

// File is a flat key-to-string dictionary that remembers its key order.
type File struct {
	keys   []string
	values map[string]string
}

// NewFile returns an empty dictionary.
func NewFile() *File {
	return &File{values: make(map[string]string)}
}

// Len returns the number of keys.
func (f *File) Len() int { return len(f.keys) }

// Keys returns the keys in file order.
func (f *File) Keys() []string { return f.keys }

// Get returns the value for key and whether it is present.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Set assigns a value, appending the key at the end on first use.
func (f *File) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Read loads and parses a flat JSON dictionary file.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a flat JSON object, walking tokens so the original key
// order survives.
func Parse(data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewFile(), nil
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", t)
	}

	f := NewFile()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}
		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, ok := vt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value for key %q, got %T", key, vt)
		}
		f.Set(key, value)
	}
	return f, nil
}

// Write saves the dictionary with four-space indentation, keys in file
// order, through a temporary sibling renamed into place.
func Write(path string, f *File) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, f.marshalIndent(), 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func (f *File) marshalIndent() []byte {
	var b bytes.Buffer
	if len(f.keys) == 0 {
		return []byte("{}")
	}
	b.WriteString("{\n")
	for i, k := range f.keys {
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(f.values[k])
		b.WriteString("    ")
		b.Write(kb)
		b.WriteString(": ")
		b.Write(vb)
		if i < len(f.keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.Bytes()
}
