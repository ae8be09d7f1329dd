// Package dimcache caches image pixel dimensions in SQLite so repeated
// conversions against the same asset directory skip re-decoding large
// stills. Entries are keyed by path and invalidated when the file's size or
// modification time changes.
package dimcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cuesync/internal/imagemeta"
	"cuesync/internal/logging"
)

// Prober resolves an image path to its pixel dimensions.
type Prober interface {
	Probe(ctx context.Context, path string) (imagemeta.Dimensions, error)
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(ctx context.Context, path string) (imagemeta.Dimensions, error)

func (f ProberFunc) Probe(ctx context.Context, path string) (imagemeta.Dimensions, error) {
	return f(ctx, path)
}

// Direct probes image files without caching.
func Direct() Prober {
	return ProberFunc(func(_ context.Context, path string) (imagemeta.Dimensions, error) {
		return imagemeta.Probe(path)
	})
}

// Cache wraps an inner Prober with SQLite-backed memoization.
type Cache struct {
	db     *sql.DB
	inner  Prober
	logger *slog.Logger
}

// Open initializes or connects to the cache database and applies the schema.
func Open(path string, inner Prober, logger *slog.Logger) (*Cache, error) {
	if inner == nil {
		inner = Direct()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "dimcache")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS image_dimensions (
        path TEXT PRIMARY KEY,
        size INTEGER NOT NULL,
        mtime_unix_ns INTEGER NOT NULL,
        width INTEGER NOT NULL,
        height INTEGER NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Cache{db: db, inner: inner, logger: logger}, nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Probe returns the cached dimensions when the file is unchanged, otherwise
// delegates to the inner prober and stores the result. Cache faults never
// fail a conversion; they degrade to a direct probe.
func (c *Cache) Probe(ctx context.Context, path string) (imagemeta.Dimensions, error) {
	info, err := os.Stat(path)
	if err != nil {
		// Let the inner prober produce the canonical not-found error.
		return c.inner.Probe(ctx, path)
	}
	size := info.Size()
	mtime := info.ModTime().UnixNano()

	var dims imagemeta.Dimensions
	row := c.db.QueryRowContext(ctx,
		`SELECT width, height FROM image_dimensions WHERE path = ? AND size = ? AND mtime_unix_ns = ?`,
		path, size, mtime)
	switch err := row.Scan(&dims.Width, &dims.Height); {
	case err == nil:
		return dims, nil
	case !errors.Is(err, sql.ErrNoRows):
		c.logger.Warn("dimension cache lookup failed", logging.String(logging.FieldPath, path), logging.Error(err))
	}

	dims, err = c.inner.Probe(ctx, path)
	if err != nil {
		return imagemeta.Dimensions{}, err
	}

	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO image_dimensions (path, size, mtime_unix_ns, width, height) VALUES (?, ?, ?, ?, ?)`,
		path, size, mtime, dims.Width, dims.Height); err != nil {
		c.logger.Warn("dimension cache store failed", logging.String(logging.FieldPath, path), logging.Error(err))
	}
	return dims, nil
}
