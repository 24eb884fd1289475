package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanshika/socialgraph/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	name     TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS connections (
	source   TEXT NOT NULL REFERENCES users(name) ON DELETE CASCADE,
	target   TEXT NOT NULL REFERENCES users(name) ON DELETE CASCADE,
	weight   INTEGER NOT NULL CHECK (weight >= 0),
	position INTEGER NOT NULL,
	PRIMARY KEY (source, target)
);
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	saved_at TEXT NOT NULL
);
`

// SQLiteRepository stores the snapshot in a SQLite database.
type SQLiteRepository struct {
	conn  *sql.DB
	path  string
	nowFn func() time.Time
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", "PRAGMA foreign_keys=ON"} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteRepository{conn: conn, path: path, nowFn: time.Now}, nil
}

// WithClock overrides the time provider used to stamp saves.
func (r *SQLiteRepository) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		r.nowFn = nowFn
	}
}

// Name identifies the backend in logs.
func (r *SQLiteRepository) Name() string { return BackendSQLite + ":" + r.path }

// Load reads users and connections in their saved order.
func (r *SQLiteRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	var savedAt string
	err := r.conn.QueryRowContext(ctx, `SELECT saved_at FROM snapshot_meta WHERE id = 1`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", r.path, ErrSnapshotNotFound)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot meta: %w", err)
	}

	snapshot := domain.Snapshot{Nodes: []string{}, Edges: []domain.Edge{}}

	rows, err := r.conn.QueryContext(ctx, `SELECT name FROM users ORDER BY position`)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("query users: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return domain.Snapshot{}, fmt.Errorf("scan user: %w", err)
		}
		snapshot.Nodes = append(snapshot.Nodes, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return domain.Snapshot{}, fmt.Errorf("iterate users: %w", err)
	}
	rows.Close()

	rows, err = r.conn.QueryContext(ctx, `SELECT source, target, weight FROM connections ORDER BY position`)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("query connections: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.Source, &e.Target, &e.Weight); err != nil {
			return domain.Snapshot{}, fmt.Errorf("scan connection: %w", err)
		}
		snapshot.Edges = append(snapshot.Edges, e)
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("iterate connections: %w", err)
	}
	return snapshot, nil
}

// Save replaces the stored snapshot inside one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM connections`, `DELETE FROM users`, `DELETE FROM snapshot_meta`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	insertUser, err := tx.PrepareContext(ctx, `INSERT INTO users (name, position) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare user insert: %w", err)
	}
	defer insertUser.Close()
	for i, name := range snapshot.Nodes {
		if _, err := insertUser.ExecContext(ctx, name, i); err != nil {
			return fmt.Errorf("insert user %q: %w", name, err)
		}
	}

	insertConn, err := tx.PrepareContext(ctx, `INSERT INTO connections (source, target, weight, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare connection insert: %w", err)
	}
	defer insertConn.Close()
	for i, e := range snapshot.Edges {
		if _, err := insertConn.ExecContext(ctx, e.Source, e.Target, e.Weight, i); err != nil {
			return fmt.Errorf("insert connection %q-%q: %w", e.Source, e.Target, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta (id, saved_at) VALUES (1, ?)`,
		r.nowFn().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("stamp snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Probe pings the database.
func (r *SQLiteRepository) Probe(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}

// Close closes the database connection.
func (r *SQLiteRepository) Close(context.Context) error {
	return r.conn.Close()
}
