package index

// AnnotationIndex defines the interface for annotation indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type AnnotationIndex interface {
	ReplaceFile(file, checksum string, rows []Row) error
	DeleteFile(file string) error
	GetChecksum(file string) (string, error)
	AllChecksums() (map[string]string, error)
	Docs() ([]string, error)
	CountByKind() (map[string]int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies AnnotationIndex at compile time.
var _ AnnotationIndex = (*DB)(nil)
