package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDatabase initializes the SQLite database and creates tables
func InitDatabase(dbPath string) error {
	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=1")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables
	if err := CreateTables(DB); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("Database initialized at: %s", dbPath)
	return nil
}

// CreateTables creates all necessary tables on the given handle
func CreateTables(database *sql.DB) error {
	createHistoryTable := `
	CREATE TABLE IF NOT EXISTS presentation_history (
		deck_id TEXT PRIMARY KEY,
		deck_path TEXT NOT NULL DEFAULT '',
		open_count INTEGER NOT NULL DEFAULT 0,
		first_opened_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_opened_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := database.Exec(createHistoryTable); err != nil {
		return fmt.Errorf("failed to create presentation_history table: %w", err)
	}

	// Index for most-recent-first history listing
	createIndex := `CREATE INDEX IF NOT EXISTS idx_last_opened ON presentation_history(last_opened_at);`
	if _, err := database.Exec(createIndex); err != nil {
		return fmt.Errorf("failed to create last_opened index: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
