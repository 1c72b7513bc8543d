// Package postgres provides the Postgres-backed storage.Storage using the
// pgx driver through its database/sql adapter.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/uni-api/internal/config"
	"github.com/aanand-mishra/uni-api/internal/storage/sqlstore"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS schools (
		id    BIGSERIAL    PRIMARY KEY,
		title VARCHAR(30)  NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		phone VARCHAR(20)  NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id         BIGSERIAL        PRIMARY KEY,
		first_name VARCHAR(20)      NOT NULL,
		last_name  VARCHAR(20)      NOT NULL,
		email      VARCHAR(120)     NOT NULL UNIQUE,
		phone      VARCHAR(20)      NOT NULL UNIQUE,
		gpa        DOUBLE PRECISION NOT NULL,
		campus     BOOLEAN          NOT NULL,
		school     BIGINT           NOT NULL REFERENCES schools(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_school ON students(school)`,
}

type Postgres struct {
	*sqlstore.Store
}

// New connects to cfg.PostgresDSN and creates the tables if needed.
func New(cfg *config.Config) (*Postgres, error) {
	if cfg.PostgresDSN == "" {
		return nil, errors.New("postgres.New: dsn is required")
	}

	// "pgx" is the name pgx/v5/stdlib registers; sqlx maps it to $N
	// placeholders.
	db, err := sqlx.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.New: ping db: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres.New: create schema: %w", err)
		}
	}

	return &Postgres{Store: sqlstore.New(db, isConstraintError)}, nil
}

// isConstraintError matches SQLSTATE class 23 (integrity constraint
// violation): unique_violation, foreign_key_violation and friends.
func isConstraintError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, "23")
}
