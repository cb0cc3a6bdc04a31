package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Queries provides access to named SQL queries loaded from embedded .sql
// files, e.g. "insert-evaluation-event" or "top-rules".
type Queries struct {
	dot *dotsql.DotSql
	db  *sqlx.DB
}

// LoadQueries loads all .sql files from the embedded filesystem and returns
// a Queries instance bound to the given database.
func LoadQueries(database *sqlx.DB) (*Queries, error) {
	var combinedSQL string

	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}

		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		combinedSQL += string(content) + "\n"
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combinedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}

	return &Queries{dot: dot, db: database}, nil
}

// Exec executes a named query.
func (q *Queries) Exec(name string, args ...interface{}) (sql.Result, error) {
	return q.dot.Exec(q.db, name, args...)
}

// QueryRow executes a named query expected to return a single row.
func (q *Queries) QueryRow(name string, args ...interface{}) (*sql.Row, error) {
	return q.dot.QueryRow(q.db, name, args...)
}

// Query executes a named query returning multiple rows.
func (q *Queries) Query(name string, args ...interface{}) (*sql.Rows, error) {
	return q.dot.Query(q.db, name, args...)
}

// DB exposes the underlying sqlx handle for callers that need transactions.
func (q *Queries) DB() *sqlx.DB {
	return q.db
}
