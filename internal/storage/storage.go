// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, so the SQLite and Postgres
// backends are interchangeable and selected by configuration in main.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/uni-api/internal/types"
)

var (
	// ErrNotFound is returned by lookups and updates when no row has the
	// requested primary key.
	ErrNotFound = errors.New("record not found")

	// ErrConstraint wraps unique and foreign-key violations reported by
	// the database driver.
	ErrConstraint = errors.New("constraint violation")
)

// Storage is the database contract.
type Storage interface {
	// CreateSchool inserts a school and returns it with its generated ID.
	CreateSchool(ctx context.Context, school types.School) (types.School, error)

	// GetSchoolByID returns ErrNotFound when the school does not exist.
	GetSchoolByID(ctx context.Context, id int64) (types.School, error)

	// GetSchools returns every school ordered by ID.
	// Returns an empty slice (not nil) if there are none.
	GetSchools(ctx context.Context) ([]types.School, error)

	// UpdateSchool overwrites every column of the row with school.ID.
	UpdateSchool(ctx context.Context, school types.School) (types.School, error)

	// DeleteSchoolByID removes matching rows and reports how many went.
	// Deleting an unknown ID is not an error.
	DeleteSchoolByID(ctx context.Context, id int64) (int64, error)

	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentsBySchool returns the students whose school column equals
	// schoolID. The school itself does not have to exist.
	GetStudentsBySchool(ctx context.Context, schoolID int64) ([]types.Student, error)

	UpdateStudent(ctx context.Context, student types.Student) (types.Student, error)
	DeleteStudentByID(ctx context.Context, id int64) (int64, error)

	// Close releases the underlying connection pool.
	Close() error
}
