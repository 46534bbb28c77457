package index

import (
	"os"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "glossa-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func paperRows() []Row {
	return []Row{
		{File: "paper.pdf_annotations.json", Doc: "paper.pdf", Kind: "highlights", AnnID: 1, Text: "machine learning basics", Color: "Light Yellow", Stamp: "2026-08-20T10:30:00.000000"},
		{File: "paper.pdf_annotations.json", Doc: "paper.pdf", Kind: "comments", AnnID: 1, Text: "quoted text", Body: "a remark about gradients", Stamp: "2026-08-20T10:31:00.000000"},
		{File: "paper.pdf_annotations.json", Doc: "paper.pdf", Kind: "notes", AnnID: 1, Text: "source text", Body: "follow up on this", Topic: "Methods", Stamp: "2026-08-20T10:32:00.000000"},
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM annotations`).Scan(&count); err != nil {
		t.Fatalf("annotations table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM files`).Scan(&count); err != nil {
		t.Fatalf("files table missing: %v", err)
	}
}

func TestReplaceFileAndChecksum(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceFile("paper.pdf_annotations.json", "abc123", paperRows()); err != nil {
		t.Fatalf("ReplaceFile: %v", err)
	}
	cs, err := db.GetChecksum("paper.pdf_annotations.json")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
	counts, err := db.CountByKind()
	if err != nil {
		t.Fatalf("CountByKind: %v", err)
	}
	for _, kind := range []string{"highlights", "comments", "notes"} {
		if counts[kind] != 1 {
			t.Errorf("count[%s] = %d, want 1", kind, counts[kind])
		}
	}
}

func TestReplaceFileReplacesOldRows(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceFile("paper.pdf_annotations.json", "1", paperRows())
	_ = db.ReplaceFile("paper.pdf_annotations.json", "2", []Row{
		{File: "paper.pdf_annotations.json", Doc: "paper.pdf", Kind: "highlights", AnnID: 1, Text: "only one left"},
	})

	cs, _ := db.GetChecksum("paper.pdf_annotations.json")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	counts, _ := db.CountByKind()
	if counts["highlights"] != 1 || counts["comments"] != 0 || counts["notes"] != 0 {
		t.Errorf("counts after replace = %v", counts)
	}
}

func TestDeleteFile(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceFile("paper.pdf_annotations.json", "x", paperRows())

	if err := db.DeleteFile("paper.pdf_annotations.json"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	cs, _ := db.GetChecksum("paper.pdf_annotations.json")
	if cs != "" {
		t.Errorf("deleted file still has checksum %q", cs)
	}
	docs, _ := db.Docs()
	if len(docs) != 0 {
		t.Errorf("expected 0 docs after delete, got %v", docs)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestDocsSorted(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceFile("b.pdf_annotations.json", "1", []Row{
		{File: "b.pdf_annotations.json", Doc: "b.pdf", Kind: "highlights", AnnID: 1, Text: "x"},
	})
	_ = db.ReplaceFile("a.pdf_annotations.json", "1", []Row{
		{File: "a.pdf_annotations.json", Doc: "a.pdf", Kind: "highlights", AnnID: 1, Text: "y"},
	})

	docs, err := db.Docs()
	if err != nil {
		t.Fatalf("Docs: %v", err)
	}
	if len(docs) != 2 || docs[0] != "a.pdf" || docs[1] != "b.pdf" {
		t.Errorf("docs = %v, want [a.pdf b.pdf]", docs)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceFile("paper.pdf_annotations.json", "1", paperRows())

	results, err := db.Search("gradients", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(results))
	}
	if results[0].Doc != "paper.pdf" || results[0].Kind != "comments" || results[0].AnnID != 1 {
		t.Errorf("result = %+v", results[0])
	}
}

func TestSearch_TopicMatch(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceFile("paper.pdf_annotations.json", "1", paperRows())

	results, err := db.Search("Methods", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Kind != "notes" {
		t.Errorf("results = %+v, want 1 notes hit", results)
	}
}
