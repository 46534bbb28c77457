package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/RmnRj/glossa/internal/checksum"
	"github.com/RmnRj/glossa/internal/storage"
	"github.com/fsnotify/fsnotify"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "indexed", "removed".
type EventCallback func(kind string, file string)

// Watch starts an fsnotify watcher on the annotation root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after each
// successful index mutation.
//
// The annotation root is flat, so only the root itself is watched. Rename
// events trigger a debounced reconciliation pass that removes stale index
// entries whose files no longer exist on disk and picks up renamed-in files.
func Watch(ctx context.Context, db *DB, ann storage.Provider, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	// reconcileTimer is used to debounce rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, ann, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			file := filepath.Base(ev.Name)
			if !isAnnotationsFile(file) {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := ann.Read(file)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("file", file), slog.String("error", readErr.Error()))
					continue
				}
				if idxErr := indexFile(db, file, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("file", file), slog.String("error", idxErr.Error()))
					continue
				}
				logger.Debug("watcher: indexed", slog.String("file", file))
				if cb != nil {
					cb("indexed", file)
				}

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteFile(file); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("file", file), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("file", file))
				if cb != nil {
					cb("removed", file)
				}

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only. The new path
				// arrives as a separate Create event when it stays inside the
				// root. Delete the old entry now and schedule a short
				// reconciliation pass to catch any stragglers.
				if delErr := db.DeleteFile(file); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("file", file), slog.String("error", delErr.Error()))
				} else {
					logger.Debug("watcher: rename old deleted", slog.String("file", file))
					if cb != nil {
						cb("removed", file)
					}
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile does a lightweight sync using batch lookups: index entries
// without a corresponding file on disk are removed, and on-disk files with a
// changed or missing checksum are re-indexed.
func reconcile(db *DB, ann storage.Provider, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	files, err := ann.List(annSuffix)
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]struct{}, len(files))
	for _, f := range files {
		disk[f] = struct{}{}
	}

	for f := range checksums {
		if _, ok := disk[f]; !ok {
			if delErr := db.DeleteFile(f); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("file", f))
				if cb != nil {
					cb("removed", f)
				}
			}
		}
	}

	for f := range disk {
		data, readErr := ann.Read(f)
		if readErr != nil {
			continue
		}
		if checksums[f] == checksum.Sum(data) {
			continue
		}
		if idxErr := indexFile(db, f, data); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("file", f))
			if cb != nil {
				cb("indexed", f)
			}
		}
	}
}
