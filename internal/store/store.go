// Package store implements the repository (C2): the embedded SQL store's
// schema, mutation-batch application, and paginated typed reads (spec.md §4.2).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Repository owns the embedded SQLite database. A single exclusive mutation
// lock (writeMu) serializes the ingest supervisor's writes (spec.md §4.2,
// "Concurrency"); reads take the connection pool directly and are never
// blocked by a writer holding writeMu, since SQLite's WAL mode gives readers
// a consistent snapshot independent of an in-flight write transaction. The
// ":memory:" database runs on a single connection, so there a read waits for
// an in-flight write transaction to finish.
type Repository struct {
	db      *sqlx.DB
	path    string
	writeMu sync.Mutex
}

// Open creates (or re-creates, if memory) the SQLite database at path and
// applies the schema. path may be ":memory:" for tests.
func Open(path string) (*Repository, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	} else {
		dsn = "file::memory:?cache=shared&_pragma=foreign_keys(ON)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1) // shared in-memory cache requires a single connection to survive
	}

	r := &Repository{db: db, path: path}
	if err := r.BeginReset(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// BeginReset drops all tables/views and re-applies the schema (spec.md §4.4,
// Reset state). It takes the exclusive write lock for its whole duration.
func (r *Repository) BeginReset(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.dropAll(ctx); err != nil {
		return fmt.Errorf("drop existing schema: %w", err)
	}

	for _, stmt := range splitStatements(schema) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (r *Repository) dropAll(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `SELECT type, name FROM sqlite_master WHERE name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return err
	}
	type obj struct{ kind, name string }
	var objs []obj
	for rows.Next() {
		var o obj
		if err := rows.Scan(&o.kind, &o.name); err != nil {
			rows.Close()
			return err
		}
		objs = append(objs, o)
	}
	rows.Close()

	// Views before tables so FK-carrying drops don't trip over dependents.
	for _, o := range objs {
		if o.kind == "view" {
			if _, err := r.db.ExecContext(ctx, "DROP VIEW IF EXISTS "+o.name); err != nil {
				return err
			}
		}
	}
	for _, o := range objs {
		if o.kind == "table" {
			if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+o.name); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitStatements(s string) []string {
	raw := strings.Split(s, ";")
	out := make([]string, 0, len(raw))
	for _, stmt := range raw {
		t := strings.TrimSpace(stmt)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	if len(s) > 80 {
		return s[:80]
	}
	return s
}

// Checkpoint records the highest applied block (C2.checkpoint).
func (r *Repository) Checkpoint(ctx context.Context, height uint64, hash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkpoint (id, height, hash, applied_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET height = excluded.height, hash = excluded.hash, applied_at = excluded.applied_at
	`, height, hash, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// LastCheckpoint returns the last applied height/hash, or (0, "", false) if
// the store has never been checkpointed since the last reset.
func (r *Repository) LastCheckpoint(ctx context.Context) (height uint64, hash string, ok bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT height, hash FROM checkpoint WHERE id = 1`)
	err = row.Scan(&height, &hash)
	if err == sql.ErrNoRows {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return height, hash, true, nil
}
