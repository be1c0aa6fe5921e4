package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"appshelf/internal/domain"
	"appshelf/internal/ports"

	_ "modernc.org/sqlite"
)

const (
	schemaVersion = "1"
	databaseName  = "catalog.db"
)

// Index implements ports.CatalogIndex using SQLite
type Index struct {
	db     *sql.DB
	dbPath string
}

// Ensure Index implements CatalogIndex
var _ ports.CatalogIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open opens or creates the index database in dir. An empty dir uses
// $XDG_DATA_HOME/appshelf.
func (idx *Index) Open(dir string) error {
	if dir == "" {
		dir = defaultDir()
	}

	// Expand ~ in path
	if len(dir) > 0 && dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}

	idx.dbPath = filepath.Join(dir, databaseName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// modernc applies _pragma parameters to every pooled connection
	db, err := sql.Open("sqlite", idx.dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS apps (
			id INTEGER PRIMARY KEY,
			name TEXT,
			type TEXT NOT NULL,
			platforms INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_apps_name ON apps(name COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_apps_type ON apps(type);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file location
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsRebuild reports whether the index was built from something other
// than the source identified by key, or by an older schema
func (idx *Index) NeedsRebuild(key string) bool {
	version, _ := idx.meta("schema_version")
	sourceKey, _ := idx.meta("source_key")
	return version != schemaVersion || sourceKey != key
}

func (idx *Index) meta(key string) (string, error) {
	var value string
	err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// defaultDir returns the XDG data directory for the index
func defaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "appshelf")
}

const appColumns = `id, name, type, platforms`

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanApp(s scanner) (domain.App, error) {
	var (
		app       domain.App
		name      sql.NullString
		appType   string
		platforms int64
	)
	if err := s.Scan(&app.ID, &name, &appType, &platforms); err != nil {
		return domain.App{}, err
	}
	if name.Valid {
		app.Name = domain.StringPtr(name.String)
	}
	app.Type, _ = domain.ParseAppType(appType)
	app.Platforms = domain.Platforms(platforms) & domain.PlatformAll
	return app, nil
}

func collectApps(rows *sql.Rows) ([]domain.App, error) {
	defer rows.Close()

	var apps []domain.App
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// Get retrieves an app by id. It returns nil when the id is not indexed.
func (idx *Index) Get(id int) (*domain.App, error) {
	app, err := scanApp(idx.db.QueryRow(`SELECT `+appColumns+` FROM apps WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Search returns apps whose name contains query, or whose id starts with
// it, ordered by id. limit 0 means no limit.
func (idx *Index) Search(query string, limit int) ([]domain.App, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rows, err := idx.db.Query(`
		SELECT `+appColumns+` FROM apps
		WHERE name LIKE ? ESCAPE '\' OR CAST(id AS TEXT) LIKE ? ESCAPE '\'
		ORDER BY id
		LIMIT ?
	`, "%"+escapeLike(query)+"%", escapeLike(query)+"%", sqlLimit(limit))
	if err != nil {
		return nil, err
	}
	return collectApps(rows)
}

// List returns the apps that match filter, ordered by id
func (idx *Index) List(filter domain.Filter) ([]domain.App, error) {
	var (
		where []string
		args  []any
	)

	if len(filter.Types) > 0 {
		marks := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			marks[i] = "?"
			args = append(args, t.String())
		}
		where = append(where, "type IN ("+strings.Join(marks, ", ")+")")
	}
	if filter.Platforms != domain.PlatformNone {
		where = append(where, "(platforms & ?) = ?")
		args = append(args, int64(filter.Platforms), int64(filter.Platforms))
	}

	q := `SELECT ` + appColumns + ` FROM apps`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY id LIMIT ?`
	args = append(args, sqlLimit(filter.Limit))

	rows, err := idx.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	return collectApps(rows)
}

// Count returns the number of indexed apps
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM apps`).Scan(&n)
	return n, err
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

// sqlLimit maps "no limit" to SQLite's -1
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullName(app domain.App) any {
	if app.Name == nil {
		return nil
	}
	return *app.Name
}

// rowKey renders the stored columns of an app for change detection
func rowKey(app domain.App) string {
	name := "\x00"
	if app.Name != nil {
		name = *app.Name
	}
	return name + "\x1f" + app.Type.String() + "\x1f" + strconv.Itoa(int(app.Platforms))
}
