//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS annotations_fts USING fts5(
			file UNINDEXED,
			doc UNINDEXED,
			kind UNINDEXED,
			ann_id UNINDEXED,
			text,
			body,
			topic,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsInsert(tx *sql.Tx, file string, r Row) error {
	_, err := tx.Exec(`
		INSERT INTO annotations_fts (file, doc, kind, ann_id, text, body, topic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, file, r.Doc, r.Kind, r.AnnID, r.Text, r.Body, r.Topic)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

func ftsDeleteFile(tx *sql.Tx, file string) {
	_, _ = tx.Exec(`DELETE FROM annotations_fts WHERE file = ?`, file)
}

// Search performs an FTS5 full-text search across every indexed annotation.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT doc,
		       kind,
		       ann_id,
		       snippet(annotations_fts, 4, '<b>', '</b>', '...', 64)
		FROM annotations_fts
		WHERE annotations_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Doc, &r.Kind, &r.AnnID, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
