package ladder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Keys of bracket.json that MergeInto replaces.
const (
	keyMatches      = "Matches"
	keyProgressions = "Progressions"
	keyTeams        = "Teams"
)

// Marshal encodes d as indented JSON.
func Marshal(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes d as indented JSON to w.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes d to path.
func WriteFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a document from r and validates it. Keys other than Matches,
// Progressions and Teams are ignored.
func Read(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadFile reads a document from path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// MergeInto replaces the Matches and Progressions of an existing bracket.json
// with d's, and its Teams when d has any. Every other key (rounds, mappools,
// chroma key settings) keeps its value; keys are written in sorted order.
// Empty input is treated as an empty object.
func MergeInto(existing []byte, d Document) ([]byte, error) {
	obj := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(existing)) > 0 {
		if err := json.Unmarshal(existing, &obj); err != nil {
			return nil, fmt.Errorf("decode existing bracket: %w", err)
		}
		if obj == nil {
			obj = map[string]json.RawMessage{}
		}
	}

	set := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		obj[key] = b
		return nil
	}
	if err := set(keyMatches, d.Matches); err != nil {
		return nil, err
	}
	if err := set(keyProgressions, d.Progressions); err != nil {
		return nil, err
	}
	if len(d.Teams) > 0 {
		if err := set(keyTeams, d.Teams); err != nil {
			return nil, err
		}
	}

	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bracket: %w", err)
	}
	return append(out, '\n'), nil
}

// MergeFile merges d into the bracket.json at path, creating it if needed.
func MergeFile(path string, d Document) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	out, err := MergeInto(existing, d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
