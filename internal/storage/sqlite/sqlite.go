// Package sqlite provides the SQLite-backed storage.Storage.
//
// Two drivers are supported and chosen by config.StorageDriver:
//
//	sqlite3 — github.com/mattn/go-sqlite3, needs cgo
//	sqlite  — modernc.org/sqlite, pure Go
//
// Both register themselves with database/sql from their init functions,
// which is why they are imported for side effects only.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/aanand-mishra/uni-api/internal/config"
	"github.com/aanand-mishra/uni-api/internal/storage/sqlstore"
)

// schema is applied on every start. CREATE ... IF NOT EXISTS makes that a
// no-op once the file has been initialised.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS schools (
		id    INTEGER      PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(30)  NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		phone VARCHAR(20)  NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id         INTEGER      PRIMARY KEY AUTOINCREMENT,
		first_name VARCHAR(20)  NOT NULL,
		last_name  VARCHAR(20)  NOT NULL,
		email      VARCHAR(120) NOT NULL UNIQUE,
		phone      VARCHAR(20)  NOT NULL UNIQUE,
		gpa        REAL         NOT NULL,
		campus     BOOLEAN      NOT NULL,
		school     INTEGER      NOT NULL REFERENCES schools(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_school ON students(school)`,
}

// SQLite is the concrete storage.Storage for both SQLite drivers.
type SQLite struct {
	*sqlstore.Store
}

// New opens the database file at cfg.StoragePath with cfg.StorageDriver,
// creates the tables if they do not exist yet, and returns a ready store.
func New(cfg *config.Config) (*SQLite, error) {
	dsn, err := dataSourceName(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	// sql.Open only validates its arguments; Ping makes the first real
	// connection so a bad path fails here and not on the first request.
	db, err := sqlx.Open(cfg.StorageDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: ping db: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
		}
	}

	return &SQLite{Store: sqlstore.New(db, isConstraintError)}, nil
}

// dataSourceName appends the connection pragmas in the syntax each driver
// understands. Foreign keys are off by default in SQLite and have to be
// enabled per connection.
func dataSourceName(driver, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("storage path is required")
	}

	switch driver {
	case config.DriverSQLite3:
		return path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", nil
	case config.DriverSQLite:
		return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", driver)
	}
}
