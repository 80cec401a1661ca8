package cache

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record is the opaque serialized form of a module's analysis (spec.md
// §6.5). Only the top-level member names and their string-rendered
// Types are persisted — enough to rehydrate a module's GlobalScope
// without re-parsing, without needing to serialize the full Type graph
// (classes/functions referencing each other would otherwise require a
// graph-aware codec).
type Record struct {
	QualifiedName string            `yaml:"qualified_name"`
	Version       int               `yaml:"version"`
	Members       map[string]string `yaml:"members"` // name -> Type.String()
}

// Encode serializes r with yaml.v3, matching the teacher's and
// internal/config's use of yaml for structured on-disk data.
func Encode(r Record) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding cache record for %s: %w", r.QualifiedName, err)
	}
	return data, nil
}

// Decode parses a payload previously produced by Encode.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding cache record: %w", err)
	}
	return r, nil
}
