package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tutor-llm/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
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

// Sin ON DELETE CASCADE: el borrado en cascada lo hace el repositorio
// dentro de una transaccion, de forma explicita.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS chats (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY,
		chat_id UUID NOT NULL REFERENCES chats(id),
		seq BIGSERIAL,
		content TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_chat_id ON messages(chat_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chats_created_at ON chats(created_at DESC)`,
}

// Migrate aplica el esquema al arrancar. Cada sentencia es idempotente.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
