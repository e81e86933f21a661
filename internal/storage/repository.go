package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

// Preset is a named set of filter criteria.
type Preset struct {
	Name     string
	Criteria jobs.Criteria
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS presets (
  position INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  criteria TEXT NOT NULL,
  saved_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS input_history (
  key TEXT NOT NULL,
  position INTEGER NOT NULL,
  value TEXT NOT NULL,
  PRIMARY KEY (key, position)
);
CREATE TABLE IF NOT EXISTS write_check (
  id INTEGER PRIMARY KEY,
  checked_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file is read-only.
func (r *Repository) CheckWritable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO write_check (id, checked_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET checked_at=excluded.checked_at
`, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// SavePresets replaces the stored presets, keeping their order.
func (r *Repository) SavePresets(ctx context.Context, presets []Preset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presets`); err != nil {
		return fmt.Errorf("clear presets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO presets (position, name, criteria, saved_at)
VALUES (?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare preset statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, preset := range presets {
		c := preset.Criteria.Clone()
		c.Page = 1
		encoded, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode preset %q: %w", preset.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, i, preset.Name, string(encoded), now); err != nil {
			return fmt.Errorf("save preset %q: %w", preset.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) LoadPresets(ctx context.Context) ([]Preset, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT name, criteria
FROM presets
ORDER BY position
`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0, 8)
	for rows.Next() {
		var preset Preset
		var encoded string
		if err := rows.Scan(&preset.Name, &encoded); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &preset.Criteria); err != nil {
			return nil, fmt.Errorf("decode preset %q: %w", preset.Name, err)
		}
		presets = append(presets, preset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return presets, nil
}

// SetHistory replaces the history stored under key.
func (r *Repository) SetHistory(ctx context.Context, key string, values []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM input_history WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear history %q: %w", key, err)
	}
	for i, value := range values {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO input_history (key, position, value) VALUES (?, ?, ?)
`, key, i, value); err != nil {
			return fmt.Errorf("save history %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) History(ctx context.Context, key string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT value FROM input_history WHERE key = ? ORDER BY position
`, key)
	if err != nil {
		return nil, fmt.Errorf("query history %q: %w", key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return values, nil
}
