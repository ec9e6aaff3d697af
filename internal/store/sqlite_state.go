package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "folio.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func nowUnixMs() int64 { return time.Now().UTC().UnixMilli() }

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// CLI and TUI may hold the file at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prefs (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Prefs is a small string key-value table. It satisfies theme.Storage.
type Prefs struct {
	db  *sql.DB
	ctx context.Context
}

// OpenPrefs opens (creating if needed) the preference database. ctx bounds
// every subsequent Get/Set.
func (s Store) OpenPrefs(ctx context.Context) (*Prefs, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, fmt.Errorf("open prefs %s: %w", s.sqlitePath(), err)
	}
	return &Prefs{db: db, ctx: ctx}, nil
}

func (p *Prefs) Get(key string) (string, bool, error) {
	var v string
	err := p.db.QueryRowContext(p.ctx, `SELECT v FROM prefs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (p *Prefs) Set(key, value string) error {
	_, err := p.db.ExecContext(p.ctx, `
		INSERT INTO prefs(k, v, updated_at_unixms) VALUES(?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms
	`, key, value, nowUnixMs())
	return err
}

func (p *Prefs) Delete(key string) error {
	_, err := p.db.ExecContext(p.ctx, `DELETE FROM prefs WHERE k = ?`, key)
	return err
}

// All returns every stored preference.
func (p *Prefs) All() (map[string]string, error) {
	rows, err := p.db.QueryContext(p.ctx, `SELECT k, v FROM prefs ORDER BY k`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (p *Prefs) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
