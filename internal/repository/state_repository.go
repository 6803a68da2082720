package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/jmoiron/sqlx"
)

const schema = `
	CREATE TABLE IF NOT EXISTS client_state (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type stateRepository struct {
	db *sqlx.DB
}

func NewStateRepository(db *sqlx.DB) StateRepository {
	return &stateRepository{db: db}
}

// EnsureSchema creates the client_state table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (r *stateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM client_state
		WHERE key = $1
	`

	var value []byte
	err := r.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (r *stateRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, key, string(value), time.Now())
	return err
}

func (r *stateRepository) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM client_state
		WHERE key = $1
	`

	_, err := r.db.ExecContext(ctx, query, key)
	return err
}

func (r *stateRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
