package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"godo/internal/notify"
)

// TriggerDB is a sqlite-backed notify.Registry. Pending triggers survive
// process restarts, which a one-shot CLI needs since there is no resident
// notification center to hand them to.
type TriggerDB struct {
	db *sql.DB
}

const triggerSchema = `
CREATE TABLE IF NOT EXISTS triggers (
	id       TEXT PRIMARY KEY,
	task_id  TEXT NOT NULL DEFAULT '',
	kind     TEXT NOT NULL,
	fire_at  TIMESTAMP NOT NULL,
	repeats  INTEGER NOT NULL DEFAULT 0,
	title    TEXT NOT NULL DEFAULT '',
	body     TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_triggers_task ON triggers(task_id);
`

// OpenTriggerDB opens (creating if needed) the trigger database.
func OpenTriggerDB(path string) (*TriggerDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open trigger db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping trigger db: %w", err)
	}
	if _, err := db.Exec(triggerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init trigger schema: %w", err)
	}
	return &TriggerDB{db: db}, nil
}

// Close closes the underlying database.
func (t *TriggerDB) Close() error { return t.db.Close() }

// Schedule implements notify.Registry. An existing trigger with the same
// identifier is replaced.
func (t *TriggerDB) Schedule(d notify.Descriptor) error {
	_, err := t.db.Exec(`
		INSERT INTO triggers (id, task_id, kind, fire_at, repeats, title, body, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			task_id = excluded.task_id,
			kind = excluded.kind,
			fire_at = excluded.fire_at,
			repeats = excluded.repeats,
			title = excluded.title,
			body = excluded.body,
			category = excluded.category`,
		d.ID, d.TaskID, string(d.Kind), d.FireAt.UTC(), boolInt(d.Repeats), d.Title, d.Body, d.Category)
	if err != nil {
		return fmt.Errorf("schedule trigger %s: %w", d.ID, err)
	}
	return nil
}

// Cancel implements notify.Registry.
func (t *TriggerDB) Cancel(id string) error {
	if _, err := t.db.Exec(`DELETE FROM triggers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("cancel trigger %s: %w", id, err)
	}
	return nil
}

// CancelAll implements notify.Registry.
func (t *TriggerDB) CancelAll(taskID string) error {
	if _, err := t.db.Exec(`DELETE FROM triggers WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("cancel triggers for task %s: %w", taskID, err)
	}
	return nil
}

// Pending returns every pending trigger ordered by fire time.
func (t *TriggerDB) Pending() ([]notify.Descriptor, error) {
	rows, err := t.db.Query(`
		SELECT id, task_id, kind, fire_at, repeats, title, body, category
		FROM triggers ORDER BY fire_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	defer rows.Close()

	var out []notify.Descriptor
	for rows.Next() {
		var d notify.Descriptor
		var kind string
		var fireAt time.Time
		var repeats int
		if err := rows.Scan(&d.ID, &d.TaskID, &kind, &fireAt, &repeats, &d.Title, &d.Body, &d.Category); err != nil {
			return nil, fmt.Errorf("scan trigger: %w", err)
		}
		d.Kind = notify.Kind(kind)
		d.FireAt = fireAt.Local()
		d.Repeats = repeats != 0
		out = append(out, d)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
