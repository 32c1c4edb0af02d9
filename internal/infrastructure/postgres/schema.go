package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Esquema de persistencia del snapshot.
//
// users lleva columnas propias porque el hash de credenciales no viaja en el
// payload JSON de colecciones; el resto del registro va en data. Las demás
// colecciones se guardan como un documento JSONB por registro: el backend
// siempre lee y escribe colecciones completas, nunca consulta por campo.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		data          JSONB NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (LOWER(username))`,
	`CREATE TABLE IF NOT EXISTS customers (
		id   TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id   TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id   TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workers (
		id   TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS worker_payments (
		id   TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id   TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id   INT PRIMARY KEY CHECK (id = 1),
		data JSONB NOT NULL
	)`,
}

// EnsureSchema crea las tablas si no existen. Idempotente; se ejecuta en
// cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
