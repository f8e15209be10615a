package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Connect opens the database file at path. A single connection is kept
// open; sqlite serialises writers anyway.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx2, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ResolvePath returns dir/file when dir is writable, otherwise the same
// file name under the OS temp dir.
func ResolvePath(dir, file string) string {
	if writable(dir) {
		return filepath.Join(dir, file)
	}
	fallback := filepath.Join(os.TempDir(), file)
	slog.Warn("data dir not writable, using temp dir", "dir", dir, "path", fallback)
	return fallback
}

// writable probes dir by creating and removing a scratch file.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	return os.Remove(name) == nil
}
