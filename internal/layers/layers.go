// Package layers manages the bronze/silver/gold file layout under the data
// directory and the merge transforms between layers.
package layers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Dirs resolves the layer directories under one data root.
type Dirs struct {
	Root string
}

// NewDirs builds the layout for a data root. An empty root means "data"
// relative to the working directory.
func NewDirs(root string) Dirs {
	if root == "" {
		root = "data"
	}
	return Dirs{Root: root}
}

func (d Dirs) Bronze() string        { return filepath.Join(d.Root, "bronze") }
func (d Dirs) BronzeReviews() string { return filepath.Join(d.Bronze(), "reviews") }
func (d Dirs) Subtitles() string     { return filepath.Join(d.Bronze(), "subtitles") }
func (d Dirs) Silver() string        { return filepath.Join(d.Root, "silver") }
func (d Dirs) Gold() string          { return filepath.Join(d.Root, "gold") }

// WriteJSON marshals v with indentation and writes it to path, creating
// parent directories as needed.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON reads path and unmarshals it into v.
func ReadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a layer file is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
