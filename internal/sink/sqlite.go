package sink

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"

	"roadsafety/internal/models"
)

// SQLiteSink stores each table in a SQLite database, replacing earlier runs.
type SQLiteSink struct {
	db   *sql.DB
	path string
}

// NewSQLiteSink opens (or creates) the database at path.
func NewSQLiteSink(ctx context.Context, path string) (*SQLiteSink, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteSink{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteSink) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Write drops and recreates the table named t.Name inside one transaction.
func (s *SQLiteSink) Write(t models.Table) error {
	return s.WriteContext(context.Background(), t)
}

// WriteContext is Write with a context.
func (s *SQLiteSink) WriteContext(ctx context.Context, t models.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("%s: %w", t.Name, ErrNoColumns)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	name := quoteIdent(t.Name)

	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))

	for i, c := range t.Columns {
		cols[i] = quoteIdent(c) + " " + columnType(t, i)
		marks[i] = "?"
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("failed to drop %s: %w", t.Name, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("failed to create %s: %w", t.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", name, strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", t.Name, err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		args := make([]any, len(t.Columns))
		for j := range args {
			if j < len(row) {
				args[j] = row[j]
			}
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i+1, t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", t.Name, err)
	}

	return nil
}

// columnType defaults to TEXT so untyped values are stored as written.
func columnType(t models.Table, i int) string {
	if i < len(t.Types) && t.Types[i] != "" {
		return t.Types[i]
	}

	return models.ColumnText
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
