package sqlite

import (
	"database/sql"

	"appshelf/internal/domain"
	"appshelf/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertApp inserts or updates an app
func (t *indexTx) UpsertApp(app domain.App) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO apps (id, name, type, platforms)
		VALUES (?, ?, ?, ?)
	`, app.ID, nullName(app), app.Type.String(), int64(app.Platforms))
	return err
}

// DeleteApp removes an app by id
func (t *indexTx) DeleteApp(id int) error {
	_, err := t.tx.Exec(`DELETE FROM apps WHERE id = ?`, id)
	return err
}

// SetMeta stores a metadata value
func (t *indexTx) SetMeta(key, value string) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
