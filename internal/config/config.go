// Package config persists the API key and preferred timezone, and resolves which
// credential and timezone a command should use.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirName  = "calcom-cli"
	fileName = "config.json"

	dirMode  fs.FileMode = 0o700
	fileMode fs.FileMode = 0o600
)

// Record is the persisted configuration. Keys this client does not know about are
// carried through a load/save cycle untouched.
type Record struct {
	APIKey   string
	Timezone string

	extra map[string]json.RawMessage
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*r = Record{}
	if v, ok := fields["apiKey"]; ok {
		// A non-string key is treated as absent.
		_ = json.Unmarshal(v, &r.APIKey)
		delete(fields, "apiKey")
	}
	if v, ok := fields["timezone"]; ok {
		_ = json.Unmarshal(v, &r.Timezone)
		delete(fields, "timezone")
	}
	if len(fields) > 0 {
		r.extra = fields
	}
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+2)
	for k, v := range r.extra {
		out[k] = v
	}
	if r.APIKey != "" {
		out["apiKey"] = r.APIKey
	}
	if r.Timezone != "" {
		out["timezone"] = r.Timezone
	}
	return json.Marshal(out)
}

// DefaultPath returns $XDG_CONFIG_HOME/calcom-cli/config.json, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, dirName, fileName), nil
}

// Store reads and writes a Record at a fixed path.
type Store struct {
	Path string
}

// NewStore returns a Store at path, or at DefaultPath when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &Store{Path: path}, nil
}

// Load reads the record. A missing file is an empty record; a file that exists but
// cannot be parsed is an error, so a later Save never silently discards it.
func (s *Store) Load() (Record, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading config %s: %w", s.Path, err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing config %s: %w", s.Path, err)
	}
	return rec, nil
}

// Save writes the record as indented JSON with owner-only permissions.
func (s *Store) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	b = append(b, '\n')

	if err := os.WriteFile(s.Path, b, fileMode); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	// WriteFile only applies the mode on create.
	if err := os.Chmod(s.Path, fileMode); err != nil {
		return fmt.Errorf("securing config: %w", err)
	}
	return nil
}
