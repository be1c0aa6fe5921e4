package sqlite

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"appshelf/internal/domain"
	"appshelf/internal/ports"
)

// SyncFull replaces the whole index with catalog
func (idx *Index) SyncFull(catalog *domain.Catalog, key string) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{Full: true}

	err := idx.inTx(func(tx *indexTx) error {
		if _, err := tx.tx.Exec(`DELETE FROM apps`); err != nil {
			return err
		}
		for _, app := range catalog.Sorted() {
			if err := tx.UpsertApp(app); err != nil {
				return fmt.Errorf("failed to index app %d: %w", app.ID, err)
			}
			stats.Added++
		}
		return finishSync(tx, key)
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	logSync(stats)
	return stats, nil
}

// Sync updates the index in place: new ids are added, changed rows are
// rewritten and ids missing from catalog are deleted
func (idx *Index) Sync(catalog *domain.Catalog, key string) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	existing, err := idx.rowKeys()
	if err != nil {
		return nil, err
	}

	err = idx.inTx(func(tx *indexTx) error {
		for _, app := range catalog.Sorted() {
			old, found := existing[app.ID]
			delete(existing, app.ID)

			if found && old == rowKey(app) {
				continue
			}
			if err := tx.UpsertApp(app); err != nil {
				return fmt.Errorf("failed to index app %d: %w", app.ID, err)
			}
			if found {
				stats.Updated++
			} else {
				stats.Added++
			}
		}

		// Whatever is left no longer exists in the source
		for id := range existing {
			if err := tx.DeleteApp(id); err != nil {
				return err
			}
			stats.Deleted++
		}
		return finishSync(tx, key)
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	logSync(stats)
	return stats, nil
}

// rowKeys loads the change-detection key of every indexed app
func (idx *Index) rowKeys() (map[int]string, error) {
	rows, err := idx.db.Query(`SELECT ` + appColumns + ` FROM apps`)
	if err != nil {
		return nil, err
	}
	apps, err := collectApps(rows)
	if err != nil {
		return nil, err
	}

	keys := make(map[int]string, len(apps))
	for _, app := range apps {
		keys[app.ID] = rowKey(app)
	}
	return keys, nil
}

func (idx *Index) inTx(fn func(tx *indexTx) error) error {
	ptx, err := idx.BeginTx()
	if err != nil {
		return err
	}
	tx := ptx.(*indexTx)
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func finishSync(tx ports.IndexTx, key string) error {
	if err := tx.SetMeta("schema_version", schemaVersion); err != nil {
		return err
	}
	if err := tx.SetMeta("source_key", key); err != nil {
		return err
	}
	return tx.SetMeta("last_sync_time", strconv.FormatInt(time.Now().Unix(), 10))
}

func logSync(stats *domain.SyncStats) {
	Logger().Info("index synced",
		zap.Bool("full", stats.Full),
		zap.Int("added", stats.Added),
		zap.Int("updated", stats.Updated),
		zap.Int("deleted", stats.Deleted),
		zap.Duration("duration", stats.Duration))
}
