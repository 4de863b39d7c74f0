// Package history records confirmed mutations (profile saves, card
// creation/deletion, like toggles) in a local SQLite activity log.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Action identifies the kind of mutation recorded.
type Action string

const (
	ActionProfileSaved Action = "profile_saved"
	ActionAvatarSaved  Action = "avatar_saved"
	ActionCardCreated  Action = "card_created"
	ActionCardDeleted  Action = "card_deleted"
	ActionCardLiked    Action = "card_liked"
	ActionCardUnliked  Action = "card_unliked"
)

// Entry is one recorded mutation.
type Entry struct {
	ID        string
	Timestamp time.Time
	Action    Action
	CardID    string
	Detail    string
}

// Manager owns the activity log database.
type Manager struct {
	db *sql.DB
}

// NewManager opens (and if needed creates) the activity log at dbPath.
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

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		card_id TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_activity_action ON activity(action);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize activity schema: %w", err)
	}
	return nil
}

// Record appends one entry to the log.
func (m *Manager) Record(action Action, cardID, detail string) error {
	query := `INSERT INTO activity (id, timestamp, action, card_id, detail) VALUES (?, ?, ?, ?, ?)`

	timestampStr := time.Now().Local().Format("2006-01-02 15:04:05")
	_, err := m.db.Exec(query, uuid.NewString(), timestampStr, string(action), cardID, detail)
	if err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}
	return nil
}

// Load returns the most recent entries, newest first.
func (m *Manager) Load(limit int) ([]Entry, error) {
	query := `
		SELECT id, timestamp, action, COALESCE(card_id, ''), COALESCE(detail, '')
		FROM activity
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var action string
		if err := rows.Scan(&e.ID, &ts, &action, &e.CardID, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.Action = Action(action)
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", ts, time.Local); err == nil {
			e.Timestamp = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity entries: %w", err)
	}

	return entries, nil
}

// Clear removes all entries.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM activity`); err != nil {
		return fmt.Errorf("failed to clear activity log: %w", err)
	}
	return nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}
