package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*PostgresStore)(nil)

type PostgresStore struct {
	db        *sqlx.DB
	namespace string
}

type document struct {
	Namespace string    `db:"namespace"`
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewPostgresStore(db *sqlx.DB, namespace string) *PostgresStore {
	return &PostgresStore{db: db, namespace: namespace}
}

// EnsureSchema creates the documents table when it does not exist yet.
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS demo_documents (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (namespace, key)
		)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create demo_documents table: %w", err)
	}
	return nil
}

func (r *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM demo_documents WHERE namespace = $1 AND key = $2`

	err := r.db.GetContext(ctx, &value, query, r.namespace, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("repository: get %s failed: %w", key, err)
	}
	return value, nil
}

func (r *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO demo_documents (namespace, key, value, updated_at)
		VALUES (:namespace, :key, :value, :updated_at)
		ON CONFLICT (namespace, key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at`

	doc := document{
		Namespace: r.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("repository: set %s failed: %w", key, err)
	}
	return nil
}

func (r *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM demo_documents WHERE namespace = ? AND key IN (?)`, r.namespace, keys)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("repository: delete failed: %w", err)
	}
	return nil
}
