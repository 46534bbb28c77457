package index

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/RmnRj/glossa/internal/checksum"
	"github.com/RmnRj/glossa/internal/models"
	"github.com/RmnRj/glossa/internal/storage"
)

const annSuffix = "_annotations.json"

// Sync walks the annotation root and brings the index up to date:
//   - new/changed annotation files are parsed and replaced
//   - files removed from disk are deleted from the index
func Sync(db *DB, ann storage.Provider, logger *slog.Logger) error {
	files, err := ann.List(annSuffix)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(files))
	for _, f := range files {
		disk[f] = struct{}{}

		data, err := ann.Read(f)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("file", f), slog.String("error", err.Error()))
			continue
		}
		if checksums[f] == checksum.Sum(data) {
			continue
		}
		if err := indexFile(db, f, data); err != nil {
			logger.Warn("sync: index failed", slog.String("file", f), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("file", f))
		}
	}

	// Remove stale entries.
	for f := range checksums {
		if _, ok := disk[f]; !ok {
			if err := db.DeleteFile(f); err != nil {
				logger.Warn("sync: delete failed", slog.String("file", f), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("file", f))
			}
		}
	}

	return nil
}

// indexFile parses one annotations file and replaces its rows in the DB.
func indexFile(db *DB, file string, data []byte) error {
	var anns models.DocAnnotations
	if err := json.Unmarshal(data, &anns); err != nil {
		return err
	}
	return db.ReplaceFile(file, checksum.Sum(data), fileRows(file, anns))
}

func fileRows(file string, anns models.DocAnnotations) []Row {
	var rows []Row
	for doc, set := range anns {
		if set == nil {
			continue
		}
		for _, h := range set.Highlights {
			rows = append(rows, Row{
				File: file, Doc: doc, Kind: models.KindHighlights,
				AnnID: h.ID, Text: h.Text, Color: h.Color, Stamp: h.Timestamp,
			})
		}
		for _, c := range set.Comments {
			rows = append(rows, Row{
				File: file, Doc: doc, Kind: models.KindComments,
				AnnID: c.ID, Text: c.Text, Body: c.Comment, Stamp: c.Timestamp,
			})
		}
		for _, n := range set.Notes {
			rows = append(rows, Row{
				File: file, Doc: doc, Kind: models.KindNotes,
				AnnID: n.ID, Text: n.Text, Body: n.Note, Topic: n.Topic, Stamp: n.Timestamp,
			})
		}
	}
	return rows
}

func isAnnotationsFile(name string) bool {
	return strings.HasSuffix(name, annSuffix)
}
