package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres хранит пары ключ-значение в таблице kv_store.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres создаёт подключение к PostgreSQL и проверяет его.
// Схема таблицы накатывается миграциями (см. internal/migrations).
func NewPostgres(storageConnectionString string) (*Postgres, error) {
	const op = "kvstore.NewPostgres"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Postgres{DB: db}, nil
}

// Get возвращает значение по ключу и признак его наличия.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "kvstore.Postgres.Get"
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var value []byte
	query := `SELECT value FROM kv_store WHERE key = $1`
	err := p.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

// Set сохраняет значение по ключу через upsert.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	const op = "kvstore.Postgres.Set"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO kv_store (key, value, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE
			  SET value = EXCLUDED.value, updated_at = now()`
	if _, err := p.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключ.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	const op = "kvstore.Postgres.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM kv_store WHERE key = $1`
	if _, err := p.DB.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с базой данных.
func (p *Postgres) Close() error {
	return p.DB.Close()
}
