package index

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/RmnRj/glossa/internal/storage"
)

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

const paperJSON = `{
  "paper.pdf": {
    "highlights": [
      {"id": 1, "text": "machine learning basics", "color": "Light Yellow", "timestamp": "2026-08-20T10:30:00.000000", "text_preview": "machine learning basics"}
    ],
    "comments": [],
    "notes": [
      {"id": 1, "text": "src", "note": "follow up", "topic": "Methods", "timestamp": "2026-08-20T10:32:00.000000", "text_preview": "src"}
    ]
  }
}`

func syncEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	root := t.TempDir()
	ann, err := storage.NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, ann, testDB(t)
}

func TestSync_IndexesNewFiles(t *testing.T) {
	root, ann, db := syncEnv(t)
	if err := os.WriteFile(filepath.Join(root, "paper.pdf_annotations.json"), []byte(paperJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Sync(db, ann, discard()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	docs, _ := db.Docs()
	if len(docs) != 1 || docs[0] != "paper.pdf" {
		t.Fatalf("docs = %v, want [paper.pdf]", docs)
	}
	counts, _ := db.CountByKind()
	if counts["highlights"] != 1 || counts["notes"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestSync_SkipsUnchanged(t *testing.T) {
	root, ann, db := syncEnv(t)
	path := filepath.Join(root, "paper.pdf_annotations.json")
	_ = os.WriteFile(path, []byte(paperJSON), 0o644)

	if err := Sync(db, ann, discard()); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if err := Sync(db, ann, discard()); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	counts, _ := db.CountByKind()
	if counts["highlights"] != 1 {
		t.Errorf("counts after resync = %v", counts)
	}
}

func TestSync_RemovesStale(t *testing.T) {
	root, ann, db := syncEnv(t)
	path := filepath.Join(root, "paper.pdf_annotations.json")
	_ = os.WriteFile(path, []byte(paperJSON), 0o644)
	_ = Sync(db, ann, discard())

	_ = os.Remove(path)
	if err := Sync(db, ann, discard()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	docs, _ := db.Docs()
	if len(docs) != 0 {
		t.Errorf("docs after removal = %v, want empty", docs)
	}
	cs, _ := db.GetChecksum("paper.pdf_annotations.json")
	if cs != "" {
		t.Errorf("stale checksum survived: %q", cs)
	}
}

func TestSync_SkipsCorruptFile(t *testing.T) {
	root, ann, db := syncEnv(t)
	_ = os.WriteFile(filepath.Join(root, "bad.pdf_annotations.json"), []byte("{not json"), 0o644)

	if err := Sync(db, ann, discard()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	docs, _ := db.Docs()
	if len(docs) != 0 {
		t.Errorf("corrupt file produced docs: %v", docs)
	}
}
