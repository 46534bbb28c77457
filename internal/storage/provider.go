// Package storage defines the flat-file abstraction for a single storage root.
package storage

// Provider is the interface for file operations under a storage root.
type Provider interface {
	// List returns the names of all regular files directly under the root
	// whose name ends with suffix (empty suffix matches everything).
	List(suffix string) ([]string, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Write overwrites the named file, creating the root directory if absent.
	Write(name string, content []byte) error
	// Delete removes the named file.
	Delete(name string) error
	// Exists reports whether the named file is present.
	Exists(name string) bool
	// Path resolves a file name to its absolute path under the root.
	Path(name string) (string, error)
}
