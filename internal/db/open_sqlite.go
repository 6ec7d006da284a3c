package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mithrel/copilotmd/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

const entryColumns = `id, query, response, citations, model, created_at`

func openSQLite(ctx context.Context, dsn string) (*sqliteStore, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("sqlite wal: %w", err)
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS entries (
  id TEXT PRIMARY KEY,
  hash TEXT NOT NULL UNIQUE,
  query TEXT NOT NULL,
  response TEXT NOT NULL,
  citations TEXT NOT NULL,
  model TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_created_id ON entries(created_at DESC, id DESC);
`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (api.Entry, error) {
	var e api.Entry
	var citationsJSON string
	var created int64
	if err := row.Scan(&e.ID, &e.Query, &e.Response, &citationsJSON, &e.Model, &created); err != nil {
		return api.Entry{}, err
	}
	_ = json.Unmarshal([]byte(citationsJSON), &e.Citations)
	e.CreatedAt = time.Unix(0, created).UTC()
	return e, nil
}

func (s *sqliteStore) Put(ctx context.Context, e api.Entry) (api.Entry, error) {
	h := e.Hash()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return api.Entry{}, err
	}
	defer tx.Rollback()

	existing, err := scanEntry(tx.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE hash=?`, h))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return api.Entry{}, err
	}

	if e.ID == "" {
		e.ID = api.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	citations := e.Citations
	if citations == nil {
		citations = []string{}
	}
	citationsJSON, _ := json.Marshal(citations)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entries(id, hash, query, response, citations, model, created_at) VALUES(?,?,?,?,?,?,?)`,
		e.ID, h, e.Query, e.Response, string(citationsJSON), e.Model, e.CreatedAt.UnixNano(),
	); err != nil {
		return api.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return api.Entry{}, err
	}
	e.CreatedAt = time.Unix(0, e.CreatedAt.UnixNano()).UTC()
	return e, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (api.Entry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return api.Entry{}, ErrNotFound
	}
	return e, err
}

func (s *sqliteStore) List(ctx context.Context, q api.ListQuery) ([]api.Entry, error) {
	sqlq := `SELECT ` + entryColumns + ` FROM entries`
	conds := []string{}
	args := []any{}
	if !q.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, q.Since.UnixNano())
	}
	if !q.Until.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, q.Until.UnixNano())
	}
	if len(conds) > 0 {
		sqlq += " WHERE " + strings.Join(conds, " AND ")
	}
	sqlq += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		sqlq += " LIMIT ?"
		args = append(args, q.Limit)
	}
	rows, err := s.db.QueryContext(ctx, sqlq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []api.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
DELETE FROM entries WHERE id NOT IN (
  SELECT id FROM entries ORDER BY created_at DESC, id DESC LIMIT ?
)`, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *sqliteStore) Close() error { return s.db.Close() }
