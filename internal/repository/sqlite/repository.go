// Package sqlite stores the counter state in relational form: one row per
// section in queue and one row per ticket, waiting or called, in ticket.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"

	_ "modernc.org/sqlite"
)

const currentUserKey = "current_user"

type Repository struct {
	db  *sql.DB
	mgr *queue.Manager
	l   logger.Logger
}

// NewRepository opens (or creates) the database at path and ensures the
// schema exists. Parent directories are created if needed.
func NewRepository(path string, mgr *queue.Manager, l logger.Logger) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	r := &Repository{
		db:  db,
		mgr: mgr,
		l:   l,
	}

	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return r, nil
}

func (r *Repository) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS queue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			next_sequence INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS ticket (
			queue_id INTEGER NOT NULL,
			sequence INTEGER NOT NULL,
			is_priority INTEGER NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			called_at TEXT,
			FOREIGN KEY (queue_id) REFERENCES queue(id)
		);

		CREATE INDEX IF NOT EXISTS idx_ticket_active
			ON ticket(called_at, position);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := r.db.Exec(schema)
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Load(ctx context.Context) (*models.SystemState, error) {
	st, rejected, err := r.load(ctx)
	if err != nil {
		r.l.Errorf(ctx, "sqlite.Repository.Load: %v", err)
		return r.mgr.NewState(), qErrors.NewPersistenceError("load", err)
	}

	rejected = append(rejected, r.mgr.Sanitize(st)...)
	if len(rejected) > 0 {
		r.l.Warnf(ctx, "sqlite.Repository.Load: discarded %d invalid ticket rows", len(rejected))
	}

	return st, nil
}

func (r *Repository) load(ctx context.Context) (*models.SystemState, []error, error) {
	st := &models.SystemState{
		Queue:           []models.Ticket{},
		History:         []models.Ticket{},
		SectionCounters: map[string]int{},
	}

	rows, err := r.db.QueryContext(ctx, `SELECT title, next_sequence FROM queue`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying queues: %w", err)
	}
	for rows.Next() {
		var title string
		var next int
		if err := rows.Scan(&title, &next); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scanning queue: %w", err)
		}
		st.SectionCounters[title] = next
	}
	if err := closeRows(rows); err != nil {
		return nil, nil, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, currentUserKey).Scan(&st.CurrentUserName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("reading current user: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT q.title, t.sequence, t.is_priority, t.name, t.created_at, t.called_at
		FROM ticket t
		JOIN queue q ON q.id = t.queue_id
		ORDER BY t.called_at IS NOT NULL, t.position
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying tickets: %w", err)
	}

	var rejected []error
	for rows.Next() {
		var (
			t         models.Ticket
			createdAt string
			calledAt  sql.NullString
		)
		if err := rows.Scan(&t.Section, &t.Sequence, &t.IsPriority, &t.HolderName, &createdAt, &calledAt); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scanning ticket: %w", err)
		}

		if t.IssuedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			rejected = append(rejected, fmt.Errorf("ticket %s %d: created_at: %w", t.Section, t.Sequence, err))
			continue
		}

		if !calledAt.Valid {
			st.Queue = append(st.Queue, t)
			continue
		}

		at, err := time.Parse(time.RFC3339Nano, calledAt.String)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("ticket %s %d: called_at: %w", t.Section, t.Sequence, err))
			continue
		}
		t.CalledAt = &at
		st.History = append(st.History, t)
	}
	if err := closeRows(rows); err != nil {
		return nil, nil, err
	}

	return st, rejected, nil
}

// Save replaces every stored ticket with the contents of st inside one
// transaction. Waiting tickets keep their shared queue index as position and
// called tickets their history index.
func (r *Repository) Save(ctx context.Context, st *models.SystemState) error {
	cp := st.Clone()
	if rejected := r.mgr.Sanitize(cp); len(rejected) > 0 {
		r.l.Warnf(ctx, "sqlite.Repository.Save: dropped %d invalid ticket records", len(rejected))
	}

	if err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ticket`); err != nil {
			return fmt.Errorf("clearing tickets: %w", err)
		}

		for _, name := range r.mgr.Catalog().Names() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO queue (title, next_sequence) VALUES (?, ?)
				ON CONFLICT(title) DO UPDATE SET next_sequence = excluded.next_sequence
			`, name, cp.SectionCounters[name]); err != nil {
				return fmt.Errorf("upserting queue %s: %w", name, err)
			}
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO ticket (queue_id, sequence, is_priority, name, position, created_at, called_at)
			VALUES ((SELECT id FROM queue WHERE title = ?), ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing ticket insert: %w", err)
		}
		defer stmt.Close()

		for _, list := range [][]models.Ticket{cp.Queue, cp.History} {
			for pos, t := range list {
				var calledAt sql.NullString
				if t.CalledAt != nil {
					calledAt = sql.NullString{String: t.CalledAt.UTC().Format(time.RFC3339Nano), Valid: true}
				}
				if _, err := stmt.ExecContext(ctx, t.Section, t.Sequence, t.IsPriority, t.HolderName, pos,
					t.IssuedAt.UTC().Format(time.RFC3339Nano), calledAt); err != nil {
					return fmt.Errorf("inserting ticket %s %d: %w", t.Section, t.Sequence, err)
				}
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, currentUserKey, cp.CurrentUserName); err != nil {
			return fmt.Errorf("storing current user: %w", err)
		}

		return nil
	}); err != nil {
		r.l.Errorf(ctx, "sqlite.Repository.Save: %v", err)
		return qErrors.NewPersistenceError("save", err)
	}

	return nil
}

func (r *Repository) Clear(ctx context.Context) error {
	if err := r.withTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM ticket`,
			`UPDATE queue SET next_sequence = 1`,
			`DELETE FROM meta`,
		} {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		r.l.Errorf(ctx, "sqlite.Repository.Clear: %v", err)
		return qErrors.NewPersistenceError("clear", err)
	}

	return nil
}

func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating rows: %w", err)
	}
	return rows.Close()
}
