package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	name   string
	create string
	get    string
	upsert string
	delete string
}

var sqliteDialect = dialect{
	name: "sqlite",
	create: `CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	get:    `SELECT payload FROM slots WHERE key = ?`,
	upsert: `INSERT INTO slots(key, payload, updated_at) VALUES(?, ?, ?) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
	delete: `DELETE FROM slots WHERE key = ?`,
}

var postgresDialect = dialect{
	name: "postgres",
	create: `CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	get:    `SELECT payload FROM slots WHERE key = $1`,
	upsert: `INSERT INTO slots(key, payload, updated_at) VALUES($1, $2, $3) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
	delete: `DELETE FROM slots WHERE key = $1`,
}

const defaultPostgresDSN = "postgres://localhost/tujitume?sslmode=disable"

// SQL stores slots as rows of a single `slots` table. It serves both the
// SQLite and the Postgres backends.
type SQL struct {
	db *sql.DB
	d  dialect
}

// OpenSQLite opens (or creates) a SQLite database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		path = "tujitume.sqlite"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return newSQL(ctx, db, sqliteDialect)
}

// OpenPostgres connects to Postgres through the pgx database/sql driver.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newSQL(ctx, db, postgresDialect)
}

func newSQL(ctx context.Context, db *sql.DB, d dialect) (*SQL, error) {
	s := &SQL{db: db, d: d}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the slots table if it does not exist.
func (s *SQL) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.d.create); err != nil {
		return fmt.Errorf("create %s slots table: %w", s.d.name, err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapSQLErr(err)
	}
	if payload == nil {
		payload = []byte{}
	}
	return payload, true, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	return s.Apply(ctx, NewBatch().Put(key, value))
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	return s.Apply(ctx, NewBatch().Delete(key))
}

func (s *SQL) Apply(ctx context.Context, b *Batch) (retErr error) {
	if err := b.validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapSQLErr(err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	now := time.Now().UTC()
	for _, op := range b.Ops() {
		if op.Delete {
			_, err = tx.ExecContext(ctx, s.d.delete, op.Key)
		} else {
			v := op.Value
			if v == nil {
				v = []byte{}
			}
			_, err = tx.ExecContext(ctx, s.d.upsert, op.Key, v, now)
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", s.d.name, op.Key, err)
		}
	}
	return tx.Commit()
}

func (s *SQL) Ping(ctx context.Context) error { return mapSQLErr(s.db.PingContext(ctx)) }

func (s *SQL) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for tests.
func (s *SQL) DB() *sql.DB { return s.db }

func mapSQLErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "database is closed") {
		return ErrClosed
	}
	return err
}

var _ Store = (*SQL)(nil)
