// Package prefs persists small user preferences as string values keyed by
// name, the way a browser's local storage would.
package prefs

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// VolumeKey is the key the ambience volume is stored under.
const VolumeKey = "env_rain_volume"

// DefaultVolume is used when no usable volume is stored.
const DefaultVolume = 0.25

// ErrCorrupt marks a preference file that exists but cannot be parsed.
var ErrCorrupt = errors.New("corrupt preference file")

// Store is a string key/value preference store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// LoadVolume reads the stored volume. Missing, unparseable and out of range
// values all yield DefaultVolume.
func LoadVolume(s Store) float64 {
	raw, ok := s.Get(VolumeKey)
	if !ok {
		return DefaultVolume
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		return DefaultVolume
	}
	return v
}

// SaveVolume stores v in its shortest round-tripping form.
func SaveVolume(s Store, v float64) error {
	return s.Set(VolumeKey, strconv.FormatFloat(v, 'g', -1, 64))
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// File is a Store backed by a flat YAML mapping. Every Set rewrites the file.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// DefaultPath returns prefs.yaml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "ambient-canvas", "prefs.yaml"), nil
}

// NewFile returns an empty store that will write to path.
func NewFile(path string) *File {
	return &File{path: path, values: make(map[string]string)}
}

// OpenFile loads the store at path. A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	f := NewFile(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return f, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value

	data, err := yaml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating preference dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}
