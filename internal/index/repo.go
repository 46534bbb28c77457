package index

import (
	"fmt"
)

// Row is one indexed annotation. Annotation ids repeat across documents and
// kinds, so rows carry no primary key; a source file is always replaced as a
// whole.
type Row struct {
	File  string
	Doc   string
	Kind  string
	AnnID int
	Text  string
	Body  string
	Color string
	Topic string
	Stamp string
}

// SearchResult is one library-wide search hit.
type SearchResult struct {
	Doc     string `json:"document"`
	Kind    string `json:"kind"`
	AnnID   int    `json:"id"`
	Snippet string `json:"snippet"`
}

// ReplaceFile replaces every row sourced from one annotations file within a
// transaction and records the file checksum.
func (db *DB) ReplaceFile(file, checksum string, rows []Row) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, _ = tx.Exec(`DELETE FROM annotations WHERE file = ?`, file)
	ftsDeleteFile(tx, file)

	if len(rows) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO annotations (file, doc, kind, ann_id, text, body, color, topic, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("index: prepare insert: %w", err)
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.Exec(file, r.Doc, r.Kind, r.AnnID, r.Text, r.Body, r.Color, r.Topic, r.Stamp); err != nil {
				return fmt.Errorf("index: insert row: %w", err)
			}
			if err := ftsInsert(tx, file, r); err != nil {
				return err
			}
		}
	}

	_, err = tx.Exec(`
		INSERT INTO files (file, checksum) VALUES (?, ?)
		ON CONFLICT(file) DO UPDATE SET checksum = excluded.checksum
	`, file, checksum)
	if err != nil {
		return fmt.Errorf("index: upsert file: %w", err)
	}

	return tx.Commit()
}

// DeleteFile removes a file's checksum entry and every row sourced from it.
func (db *DB) DeleteFile(file string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDeleteFile(tx, file)
	_, _ = tx.Exec(`DELETE FROM annotations WHERE file = ?`, file)
	_, _ = tx.Exec(`DELETE FROM files WHERE file = ?`, file)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a file, or empty string if not indexed.
func (db *DB) GetChecksum(file string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM files WHERE file = ?`, file).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed file.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT file, checksum FROM files`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var f, cs string
		if err := rows.Scan(&f, &cs); err != nil {
			return nil, err
		}
		out[f] = cs
	}
	return out, rows.Err()
}

// Docs returns every distinct document name in the index, sorted.
func (db *DB) Docs() ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT doc FROM annotations ORDER BY doc`)
	if err != nil {
		return nil, fmt.Errorf("index: docs: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountByKind returns the number of indexed annotations per kind.
func (db *DB) CountByKind() (map[string]int, error) {
	rows, err := db.conn.Query(`SELECT kind, count(*) FROM annotations GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("index: count by kind: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, rows.Err()
}
