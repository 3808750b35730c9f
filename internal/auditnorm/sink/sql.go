package sink

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// execer is the part of *sql.DB the SQL sink needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// SQLSink inserts one row per normalized line.
type SQLSink struct {
	db     execer
	insert string
}

// OpenSQL connects to dsn with the postgres or mysql driver and makes sure table exists.
func OpenSQL(ctx context.Context, driver, dsn, table string) (*SQLSink, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s sink requires output.dsn", driver)
	}
	name := "postgres"
	if driver == "mysql" {
		name = "mysql"
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", name, err)
	}
	s, err := newSQLSink(ctx, db, name, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newSQLSink(ctx context.Context, db execer, driver, table string) (*SQLSink, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    event_ordinal INTEGER NOT NULL,
    record_count INTEGER NOT NULL,
    record_ordinal INTEGER NOT NULL,
    category VARCHAR(16) NOT NULL,
    line TEXT NOT NULL
)`, table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (event_ordinal, record_count, record_ordinal, category, line) VALUES ($1, $2, $3, $4, $5)", table)
	if driver == "mysql" {
		insert = fmt.Sprintf("INSERT INTO %s (event_ordinal, record_count, record_ordinal, category, line) VALUES (?, ?, ?, ?, ?)", table)
	}
	return &SQLSink{db: db, insert: insert}, nil
}

func (s *SQLSink) Write(ctx context.Context, line normalize.Line) error {
	_, err := s.db.ExecContext(ctx, s.insert,
		line.EventOrdinal, line.RecordCount, line.RecordOrdinal, line.Category.String(), line.Text)
	if err != nil {
		return fmt.Errorf("insert line %d:%d: %w", line.EventOrdinal, line.RecordOrdinal, err)
	}
	return nil
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}
