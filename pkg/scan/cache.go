package scan

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"reposcope/pkg/model"
)

// Cache persists per-file metrics in sqlite so rescans only read files that
// changed. Entries are keyed by (path, size, mtime); a file whose stat
// changed simply misses and is recounted.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS file_metrics (
	path       TEXT NOT NULL,
	size       INTEGER NOT NULL,
	mtime_ns   INTEGER NOT NULL,
	lines      INTEGER NOT NULL,
	comments   INTEGER NOT NULL,
	blanks     INTEGER NOT NULL,
	complexity INTEGER NOT NULL,
	PRIMARY KEY (path, size, mtime_ns)
);`

// OpenCache opens (creating if needed) a metric cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metric cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init metric cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached metrics for the stat triple, if present.
func (c *Cache) Get(path string, size, mtimeNS int64) (model.Metrics, bool) {
	var m model.Metrics
	row := c.db.QueryRow(
		`SELECT lines, comments, blanks, complexity FROM file_metrics
		 WHERE path = ? AND size = ? AND mtime_ns = ?`,
		path, size, mtimeNS)
	if err := row.Scan(&m.Lines, &m.CommentLines, &m.BlankLines, &m.Complexity); err != nil {
		return model.Metrics{}, false
	}
	m.Bytes = int(size)
	return m, true
}

// Put stores the metrics for the stat triple, replacing stale entries for
// the same path.
func (c *Cache) Put(path string, size, mtimeNS int64, m model.Metrics) error {
	if _, err := c.db.Exec(`DELETE FROM file_metrics WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to evict stale cache row: %w", err)
	}
	_, err := c.db.Exec(
		`INSERT INTO file_metrics (path, size, mtime_ns, lines, comments, blanks, complexity)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		path, size, mtimeNS, m.Lines, m.CommentLines, m.BlankLines, m.Complexity)
	if err != nil {
		return fmt.Errorf("failed to write cache row: %w", err)
	}
	return nil
}
