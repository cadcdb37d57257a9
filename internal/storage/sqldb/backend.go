// Package sqldb реализует key-value хранилище поверх database/sql.
// Поддерживаются SQLite (modernc.org/sqlite) и Postgres (pgx stdlib).
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"memo-service/internal/storage"
	"memo-service/internal/storage/sqldb/migrations"
)

var _ storage.Backend = (*Backend)(nil)

// dialect запросы и миграции, специфичные для СУБД
type dialect struct {
	driver     string
	goose      string
	migrations fs.FS
	dir        string
	getQuery   string
	setQuery   string
}

var (
	sqliteDialect = dialect{
		driver:     "sqlite",
		goose:      "sqlite3",
		migrations: migrations.SQLite,
		dir:        "sqlite",
		getQuery:   `SELECT value FROM kv_store WHERE key = ?`,
		setQuery: `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	}

	postgresDialect = dialect{
		driver:     "pgx",
		goose:      "postgres",
		migrations: migrations.Postgres,
		dir:        "postgres",
		getQuery:   `SELECT value FROM kv_store WHERE key = $1`,
		setQuery: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	}
)

// gooseMu goose хранит диалект и FS в глобальном состоянии
var gooseMu sync.Mutex

// Backend хранилище в таблице kv_store
type Backend struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite открывает (или создает) файл базы SQLite и применяет миграции
func OpenSQLite(ctx context.Context, path string) (*Backend, error) {
	if path == "" {
		return nil, errors.New("sqlite storage: path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(sqliteDialect.driver, path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	// SQLite сериализует запись, один коннект избавляет от SQLITE_BUSY
	db.SetMaxOpenConns(1)

	return newBackend(ctx, db, sqliteDialect)
}

// OpenPostgres подключается к Postgres по DSN и применяет миграции
func OpenPostgres(ctx context.Context, dsn string) (*Backend, error) {
	if dsn == "" {
		return nil, errors.New("postgres storage: dsn cannot be empty")
	}

	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return newBackend(ctx, db, postgresDialect)
}

func newBackend(ctx context.Context, db *sql.DB, d dialect) (*Backend, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	b := &Backend{db: db, dialect: d}
	if err := b.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return b, nil
}

// RunMigrations применяет встроенные миграции диалекта
func (b *Backend) RunMigrations(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(b.dialect.migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(b.dialect.goose); err != nil {
		return err
	}

	return goose.UpContext(ctx, b.db, b.dialect.dir)
}

// Get возвращает значение ключа
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx, b.dialect.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select key %q: %w", key, err)
	}

	return value, nil
}

// Set делает upsert значения ключа
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if _, err := b.db.ExecContext(ctx, b.dialect.setQuery, key, value); err != nil {
		return fmt.Errorf("failed to upsert key %q: %w", key, err)
	}
	return nil
}

// Close закрывает пул соединений
func (b *Backend) Close() error {
	return b.db.Close()
}
