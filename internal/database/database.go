// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package database handles connection management and migration execution
// using goose. Connect accepts either a PostgreSQL DSN or a SQLite file path
// and returns a ready-to-use pool tagged with its dialect; Migrate applies the
// embedded migrations for that dialect.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var embedMigrations embed.FS

// Dialect identifies the SQL backend behind a DB.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB is a connection pool plus the dialect it speaks. All queries in this
// repository use $N placeholders, which both backends accept.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// DialectOf picks the backend for a DSN: postgres:// and postgresql:// URLs
// select PostgreSQL, anything else is a SQLite file path.
func DialectOf(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// Connect opens a connection pool for dsn and verifies it with a ping.
func Connect(dsn string) (*DB, error) {
	dialect := DialectOf(dsn)

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case Postgres:
		db, err = openPostgres(dsn)
	default:
		db, err = openSQLite(dsn)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("database connected", "dialect", dialect)
	return &DB{DB: db, Dialect: dialect}, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	// SQLite allows a single writer; one connection also keeps the
	// per-connection pragmas below in effect for every query.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("database %s: %w", pragma, err)
		}
	}
	return db, nil
}

// Migrate runs all pending goose migrations for the pool's dialect from the
// embedded SQL files.
func Migrate(db *DB) error {
	goose.SetBaseFS(embedMigrations)

	gooseDialect, dir := "sqlite3", "migrations/sqlite"
	if db.Dialect == Postgres {
		gooseDialect, dir = "postgres", "migrations/postgres"
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db.DB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "dialect", db.Dialect)
	return nil
}

// Initialize prepares storage once before the server accepts requests:
// it applies migrations and seeds the default presets. Both steps are
// idempotent, so calling it on an initialized database is a no-op.
func Initialize(db *DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	return Seed(db)
}
