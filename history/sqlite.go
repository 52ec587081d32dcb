package history

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStorage stores values in the kv table of a SQLite database.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at path and prepares the kv
// table. If logger is not nil, the open is logged.
func OpenSQLite(path string, logger *zap.SugaredLogger) (*SQLiteStorage, error) {
	if logger != nil {
		logger.Debugw("Opening history database", "path", path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// Set busy timeout to 5 seconds so concurrent calculators wait instead
	// of failing.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}
	s, err := NewSQLiteStorage(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if logger != nil {
		logger.Infow("History database opened", "path", path)
	}
	return s, nil
}

// NewSQLiteStorage uses an already open database, creating the kv table if it
// does not exist.
func NewSQLiteStorage(db *sql.DB) (*SQLiteStorage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "failed to create kv table")
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %q", key)
	}
	return v, nil
}

func (s *SQLiteStorage) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return errors.Wrapf(err, "failed to put %q", key)
}

func (s *SQLiteStorage) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return errors.Wrapf(err, "failed to delete %q", key)
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
