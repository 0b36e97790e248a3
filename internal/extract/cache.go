package extract

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// Cache is an optional SQLite-backed store of per-file extraction results,
// keyed by path plus size and mtime so a replaced PDF is re-extracted. It
// is purely an accelerator: losing it only costs re-extraction time, since
// results are also persisted into the bibliography's Extracted-DOIs fields.
//
// A nil *Cache is valid and disables caching.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the extraction cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening extraction cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS extracted (
			path  TEXT NOT NULL,
			size  INTEGER NOT NULL,
			mtime INTEGER NOT NULL,
			dois  TEXT NOT NULL,
			PRIMARY KEY (path, size, mtime)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached extraction result for the file, if the file still
// has the size and mtime it was cached with.
func (c *Cache) Get(path string) ([]string, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	size, mtime, err := statKey(path)
	if err != nil {
		return nil, false, err
	}

	var joined string
	err = c.db.QueryRow(
		`SELECT dois FROM extracted WHERE path = ? AND size = ? AND mtime = ?`,
		path, size, mtime,
	).Scan(&joined)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying extraction cache: %w", err)
	}

	if joined == "" {
		return []string{}, true, nil
	}
	return strings.Split(joined, FieldSep), true, nil
}

// Put stores an extraction result for the file's current size and mtime.
// Cache write failures are swallowed: the cache is best-effort.
func (c *Cache) Put(path string, dois []string) {
	if c == nil {
		return
	}

	size, mtime, err := statKey(path)
	if err != nil {
		return
	}

	_, _ = c.db.Exec(
		`INSERT OR REPLACE INTO extracted (path, size, mtime, dois) VALUES (?, ?, ?, ?)`,
		path, size, mtime, strings.Join(dois, FieldSep),
	)
}

// statKey returns the (size, mtime) freshness key for a file.
func statKey(path string) (int64, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, err
	}
	return info.Size(), info.ModTime().UnixNano(), nil
}
