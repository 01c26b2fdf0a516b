package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/memchat/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the chatbot database at the given path
// and runs the idempotent migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// One writer connection: a fact replace is delete-then-insert and must
	// never interleave with another turn's write.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);

	CREATE TABLE IF NOT EXISTS facts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		fact_key   TEXT NOT NULL,
		fact_value TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_facts_key ON facts(fact_key);
	`
	_, err := s.db.Exec(schema)
	return err
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *SQLiteStore) AppendMessage(ctx context.Context, sessionID, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		sessionID, role, content, utcNow())
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentMessages(ctx context.Context, sessionID string, limit int) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, role, content, created_at FROM messages
		 WHERE session_id = ? ORDER BY id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query walks newest-first; callers want chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *SQLiteStore) ClearSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) WriteFact(ctx context.Context, key, value string, replace bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM facts WHERE fact_key = ?`, key); err != nil {
			return fmt.Errorf("supersede fact %q: %w", key, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO facts (fact_key, fact_value, created_at) VALUES (?, ?, ?)`,
		key, value, utcNow()); err != nil {
		return fmt.Errorf("insert fact %q: %w", key, err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) LatestFact(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT fact_value FROM facts WHERE fact_key = ? ORDER BY id DESC LIMIT 1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("latest fact %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) AccumulatedFacts(ctx context.Context, key string, n int) ([]string, error) {
	values, err := s.queryValues(ctx,
		`SELECT fact_value FROM facts WHERE fact_key = ? ORDER BY id DESC LIMIT ?`, key, n)
	if err != nil {
		return nil, fmt.Errorf("accumulated facts %q: %w", key, err)
	}

	// Oldest of the selected window first.
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
	return values, nil
}

func (s *SQLiteStore) Notes(ctx context.Context, limit int) ([]string, error) {
	values, err := s.queryValues(ctx,
		`SELECT fact_value FROM facts WHERE fact_key = ? ORDER BY id DESC LIMIT ?`,
		model.KeyNote, limit)
	if err != nil {
		return nil, fmt.Errorf("notes: %w", err)
	}
	return values, nil
}

func (s *SQLiteStore) SearchFacts(ctx context.Context, query string, limit int) ([]string, error) {
	values, err := s.queryValues(ctx,
		`SELECT fact_value FROM facts WHERE fact_value LIKE ? ORDER BY id DESC LIMIT ?`,
		"%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search facts: %w", err)
	}
	return values, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryValues(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row scanner) (model.Message, error) {
	var m model.Message
	var createdAt string
	if err := row.Scan(&m.SessionID, &m.Role, &m.Content, &createdAt); err != nil {
		return m, err
	}
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return m, nil
}
