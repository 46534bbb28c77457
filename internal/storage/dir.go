package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir implements Provider backed by a single local directory.
//
// Writes are plain whole-file overwrites; concurrent writers follow
// last-writer-wins semantics.
type Dir struct {
	root string
}

// NewDir creates a Provider rooted at root. The directory is created on the
// first write, so root may not exist yet.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute root directory.
func (d *Dir) Root() string {
	return d.root
}

// safeName rejects anything other than a plain file name directly under the
// root (no separators, no traversal) and returns the absolute path.
func (d *Dir) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: empty file name")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("storage: invalid file name: %s", name)
	}
	abs := filepath.Join(d.root, cleaned)
	if !strings.HasPrefix(abs, d.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path escapes root: %s", name)
	}
	return abs, nil
}

// List returns the names of files directly under the root ending in suffix.
func (d *Dir) List(suffix string) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

// Read returns the raw bytes of the named file.
func (d *Dir) Read(name string) ([]byte, error) {
	abs, err := d.safeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write overwrites the named file, creating the root directory if absent.
func (d *Dir) Write(name string, content []byte) error {
	abs, err := d.safeName(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Delete removes the named file.
func (d *Dir) Delete(name string) error {
	abs, err := d.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the named file is present.
func (d *Dir) Exists(name string) bool {
	abs, err := d.safeName(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// Path resolves a file name to its absolute path under the root.
func (d *Dir) Path(name string) (string, error) {
	return d.safeName(name)
}
