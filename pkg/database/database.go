package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/legalease/lexctl/internal/config"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// migrations run in order on every start. They must stay idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		session_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		time TEXT NOT NULL,
		full_text TEXT NOT NULL,
		summary TEXT NOT NULL,
		has_chat INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_user_created ON documents(user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS chats (
		session_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		document_title TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES documents(session_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES chats(session_id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id, id)`,
}

// NewClient opens the sqlite store and applies the schema
func NewClient(cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	dsn := ":memory:"
	if !cfg.InMemory() {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// pragmas in the DSN apply to every pooled connection
		dsn = "file:" + cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so the pool
	// must hold exactly one connection that never expires.
	if cfg.InMemory() {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migration %d: %w", i, err)
		}
	}

	logger.Info("database connected",
		"driver", driverName,
		"path", cfg.Path,
		"migrations", len(migrations),
	)

	return db, nil
}

// Close closes the database
func Close(db *sql.DB, logger *slog.Logger) error {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return err
	}
	logger.Info("database closed")
	return nil
}
