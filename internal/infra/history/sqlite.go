package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore keeps one row per executed request.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var (
	_ ports.HistorySink   = (*SQLiteStore)(nil)
	_ ports.HistoryReader = (*SQLiteStore)(nil)
)

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storeError("history.sqlite.open", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeError("history.sqlite.open", path, err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, storeError("history.sqlite.schema", path, err)
	}
	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}
	r := entry.Result
	ts := r.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	var kind, msg string
	if r.Err != nil {
		kind, msg = string(r.Err.Kind), r.Err.Message
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (
			id, run_id, captured_at, method, url,
			status_code, status_reason, body, latency_ms,
			error_kind, error_message, record
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, entry.RunID, ts.UTC().Format(time.RFC3339Nano), string(r.Method), r.URL,
		r.StatusCode, r.StatusReason, r.Body, r.LatencyMS,
		kind, msg, entry.Text,
	)
	if err != nil {
		return storeError("history.sqlite.append", s.path, err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, captured_at, method, url,
		       status_code, status_reason, body, latency_ms,
		       error_kind, error_message, record
		FROM history
		ORDER BY rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, storeError("history.sqlite.list", s.path, err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var (
			e               domain.HistoryEntry
			capturedAt      string
			method          string
			errKind, errMsg string
		)
		if err := rows.Scan(
			&e.ID, &e.RunID, &capturedAt, &method, &e.Result.URL,
			&e.Result.StatusCode, &e.Result.StatusReason, &e.Result.Body, &e.Result.LatencyMS,
			&errKind, &errMsg, &e.Text,
		); err != nil {
			return nil, storeError("history.sqlite.list", s.path, err)
		}
		e.Result.Method = domain.HTTPMethod(method)
		if ts, err := time.Parse(time.RFC3339Nano, capturedAt); err == nil {
			e.Result.Timestamp = ts
		}
		if errKind != "" || errMsg != "" {
			e.Result.Err = &domain.RunError{Kind: domain.RunErrorKind(errKind), Message: errMsg}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("history.sqlite.list", s.path, err)
	}
	return out, nil
}

func storeError(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindIO,
		Path: path,
		Err:  err,
	}
}
