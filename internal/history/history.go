// Package history keeps a local SQLite log of settled extractions, the
// client-side counterpart of the server's download history.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/extractcli/internal/migrations"
	"github.com/studiowebux/extractcli/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extractions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		query TEXT NOT NULL,
		format TEXT NOT NULL,
		title TEXT NOT NULL,
		file_id TEXT NOT NULL,
		cached INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_extractions_timestamp ON extractions(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_extractions_query ON extractions(query);
	`

	_, err := m.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return nil
}

// Save records one settled extraction. A zero Timestamp is filled with the
// current local time.
func (m *Manager) Save(entry types.HistoryEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
		INSERT INTO extractions (timestamp, query, format, title, file_id, cached, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		ts.Local().Format(timestampLayout),
		entry.Query,
		entry.Format,
		entry.Title,
		entry.FileID,
		entry.Cached,
		entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Load returns the most recent entries, newest first. limit <= 0 returns
// everything.
func (m *Manager) Load(limit int) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, query, format, title, file_id, cached, duration_ms
		FROM extractions
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var entry types.HistoryEntry
		var timestamp string
		if err := rows.Scan(&entry.ID, &timestamp, &entry.Query, &entry.Format,
			&entry.Title, &entry.FileID, &entry.Cached, &entry.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if ts, err := time.ParseInLocation(timestampLayout, timestamp, time.Local); err == nil {
			entry.Timestamp = ts
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear deletes all history entries.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM extractions`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}
