// Copyright (c) 2026 Kuramono. All rights reserved.

package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway implements [Gateway] on a single key-value table.
//
// The archive_kv table (see data/migrations) stores one JSONB document per
// logical key. The relational engine is used purely as a durable KV store;
// no schema knowledge of the collection leaks into SQL.
type PostgresGateway struct {
	pool *pgxpool.Pool
}

// NewPostgresGateway creates a PostgreSQL-backed [Gateway].
func NewPostgresGateway(pool *pgxpool.Pool) *PostgresGateway {
	return &PostgresGateway{pool: pool}
}

/*
Load returns the document stored under key.

Returns:
  - []byte: Raw JSON document, nil when the key is absent
  - error: Query errors
*/
func (gateway *PostgresGateway) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM archive_kv WHERE key = $1`

	var raw []byte
	if err := gateway.pool.QueryRow(ctx, query, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_gateway_load_failed: %w", err)
	}
	return raw, nil
}

/*
Save upserts the document under key.

Returns:
  - error: Execution errors
*/
func (gateway *PostgresGateway) Save(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO archive_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := gateway.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("postgres_gateway_save_failed: %w", err)
	}
	return nil
}

// Ping verifies the PostgreSQL pool is healthy.
func (gateway *PostgresGateway) Ping(ctx context.Context) error {
	if err := gateway.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres_gateway_ping_failed: %w", err)
	}
	return nil
}
