package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*SQLiteStore)(nil)

// SQLiteStore keeps demo documents in a local file so the demo survives restarts
// without any server dependency.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

func NewSQLiteStore(path, namespace string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection keeps writers from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, namespace: namespace}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS demo_documents (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (namespace, key)
	);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create demo_documents table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM demo_documents WHERE namespace = ? AND key = ?`,
		s.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("sqlite: get %s failed: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO demo_documents (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE
		SET value = excluded.value,
		    updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, s.namespace, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("sqlite: set %s failed: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM demo_documents WHERE namespace = ? AND key = ?`,
			s.namespace, key,
		); err != nil {
			return fmt.Errorf("sqlite: delete %s failed: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
