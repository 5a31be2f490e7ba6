package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Common errors for simulation loading/saving.
var (
	ErrFileNotFound     = errors.New("simulation file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("simulation file is empty")
)

// LoadFromFile reads a simulation from a JSON or YAML file.
// The format is picked by extension (.yaml, .yml for YAML, otherwise JSON).
func LoadFromFile(path string) (*Simulation, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if isYAML(path) {
		return ParseYAML(data)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	return ParseJSON(data)
}

// SaveToFile writes a simulation using an atomic rename. The format follows
// the extension as in LoadFromFile. Parent directories are created.
func SaveToFile(path string, sim *Simulation) error {
	if sim == nil {
		return errors.New("simulation cannot be nil")
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = ToYAML(sim)
	} else {
		data, err = ToJSON(sim)
	}
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// ParseJSON validates data against the simulation schema and decodes it.
func ParseJSON(data []byte) (*Simulation, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var sim Simulation
	if err := json.Unmarshal(data, &sim); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &sim, nil
}

// ParseYAML decodes a YAML simulation document.
func ParseYAML(data []byte) (*Simulation, error) {
	var sim Simulation
	if err := yaml.Unmarshal(data, &sim); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &sim, nil
}

// ToJSON marshals a simulation to indented JSON with a trailing newline.
func ToJSON(sim *Simulation) ([]byte, error) {
	if sim == nil {
		return nil, errors.New("simulation cannot be nil")
	}
	data, err := json.MarshalIndent(sim, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ToYAML marshals a simulation to YAML.
func ToYAML(sim *Simulation) ([]byte, error) {
	if sim == nil {
		return nil, errors.New("simulation cannot be nil")
	}
	data, err := yaml.Marshal(sim)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return data, nil
}

// LoadGlob loads every file matching pattern (with ** support) in lexical
// order and folds them together with Merge, so later files override earlier
// ones for identical request matchers.
func LoadGlob(pattern string) (*Simulation, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no match for %s", ErrFileNotFound, pattern)
	}
	sort.Strings(matches)

	result := Build(nil)
	for _, match := range matches {
		sim, err := LoadFromFile(match)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", match, err)
		}
		result = Merge(result, sim)
	}
	return result, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
