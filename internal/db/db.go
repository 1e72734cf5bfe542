package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	// El archivo local es de baja concurrencia.
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          BIGINT PRIMARY KEY,
	target_type TEXT NOT NULL,
	target_id   BIGINT NOT NULL,
	text        TEXT NOT NULL,
	encrypted   BOOLEAN NOT NULL,
	location    JSONB,
	author      JSONB NOT NULL,
	files       JSONB NOT NULL,
	sent_at     BIGINT NOT NULL,
	flagged     BOOLEAN NOT NULL DEFAULT FALSE,
	likes       BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS messages_target_idx ON messages (target_type, target_id, sent_at);
`

// EnsureSchema crea las tablas del archivo de mensajes si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
