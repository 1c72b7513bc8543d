// Package sqlstore implements storage.Storage on top of sqlx. The SQLite
// and Postgres backends open the connection, create their schema, and
// hand the *sqlx.DB to New; every query below is written with ?
// placeholders and rebound to the driver's dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/uni-api/internal/storage"
	"github.com/aanand-mishra/uni-api/internal/types"
)

const (
	schoolColumns  = "id, title, email, phone"
	studentColumns = "id, first_name, last_name, email, phone, gpa, campus, school"
)

var _ storage.Storage = (*Store)(nil)

// Store is safe for concurrent use; *sqlx.DB wraps the database/sql pool.
type Store struct {
	db           *sqlx.DB
	isConstraint func(error) bool
}

// New wraps db. isConstraint reports whether a driver error is a unique
// or foreign-key violation; such errors are returned wrapping
// storage.ErrConstraint.
func New(db *sqlx.DB, isConstraint func(error) bool) *Store {
	return &Store{db: db, isConstraint: isConstraint}
}

// DB exposes the handle for backend-specific setup and tests.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) wrap(op string, err error) error {
	if s.isConstraint != nil && s.isConstraint(err) {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Schools
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateSchool(ctx context.Context, school types.School) (types.School, error) {
	query := s.db.Rebind(
		"INSERT INTO schools (title, email, phone) VALUES (?, ?, ?) RETURNING " + schoolColumns,
	)

	var created types.School
	if err := s.db.GetContext(ctx, &created, query, school.Title, school.Email, school.Phone); err != nil {
		return types.School{}, s.wrap("CreateSchool", err)
	}
	return created, nil
}

func (s *Store) GetSchoolByID(ctx context.Context, id int64) (types.School, error) {
	query := s.db.Rebind("SELECT " + schoolColumns + " FROM schools WHERE id = ? LIMIT 1")

	var school types.School
	if err := s.db.GetContext(ctx, &school, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.School{}, fmt.Errorf("no school found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.School{}, s.wrap("GetSchoolByID", err)
	}
	return school, nil
}

func (s *Store) GetSchools(ctx context.Context) ([]types.School, error) {
	schools := make([]types.School, 0)
	if err := s.db.SelectContext(ctx, &schools, "SELECT "+schoolColumns+" FROM schools ORDER BY id"); err != nil {
		return nil, s.wrap("GetSchools", err)
	}
	return schools, nil
}

func (s *Store) UpdateSchool(ctx context.Context, school types.School) (types.School, error) {
	query := s.db.Rebind(
		"UPDATE schools SET title = ?, email = ?, phone = ? WHERE id = ? RETURNING " + schoolColumns,
	)

	var updated types.School
	err := s.db.GetContext(ctx, &updated, query, school.Title, school.Email, school.Phone, school.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.School{}, fmt.Errorf("no school found with id %d: %w", school.ID, storage.ErrNotFound)
		}
		return types.School{}, s.wrap("UpdateSchool", err)
	}
	return updated, nil
}

func (s *Store) DeleteSchoolByID(ctx context.Context, id int64) (int64, error) {
	return s.deleteByID(ctx, "DeleteSchoolByID", "DELETE FROM schools WHERE id = ?", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	query := s.db.Rebind(`
		INSERT INTO students (first_name, last_name, email, phone, gpa, campus, school)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + studentColumns)

	var created types.Student
	err := s.db.GetContext(ctx, &created, query,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.GPA,
		student.Campus,
		student.School,
	)
	if err != nil {
		return types.Student{}, s.wrap("CreateStudent", err)
	}
	return created, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	query := s.db.Rebind("SELECT " + studentColumns + " FROM students WHERE id = ? LIMIT 1")

	var student types.Student
	if err := s.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, s.wrap("GetStudentByID", err)
	}
	return student, nil
}

func (s *Store) GetStudents(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)
	if err := s.db.SelectContext(ctx, &students, "SELECT "+studentColumns+" FROM students ORDER BY id"); err != nil {
		return nil, s.wrap("GetStudents", err)
	}
	return students, nil
}

func (s *Store) GetStudentsBySchool(ctx context.Context, schoolID int64) ([]types.Student, error) {
	query := s.db.Rebind("SELECT " + studentColumns + " FROM students WHERE school = ? ORDER BY id")

	students := make([]types.Student, 0)
	if err := s.db.SelectContext(ctx, &students, query, schoolID); err != nil {
		return nil, s.wrap("GetStudentsBySchool", err)
	}
	return students, nil
}

func (s *Store) UpdateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	query := s.db.Rebind(`
		UPDATE students
		SET first_name = ?, last_name = ?, email = ?, phone = ?, gpa = ?, campus = ?, school = ?
		WHERE id = ?
		RETURNING ` + studentColumns)

	var updated types.Student
	err := s.db.GetContext(ctx, &updated, query,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.GPA,
		student.Campus,
		student.School,
		student.ID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %d: %w", student.ID, storage.ErrNotFound)
		}
		return types.Student{}, s.wrap("UpdateStudent", err)
	}
	return updated, nil
}

func (s *Store) DeleteStudentByID(ctx context.Context, id int64) (int64, error) {
	return s.deleteByID(ctx, "DeleteStudentByID", "DELETE FROM students WHERE id = ?", id)
}

// deleteByID runs a delete-by-filter; zero affected rows is a success.
func (s *Store) deleteByID(ctx context.Context, op, query string, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), id)
	if err != nil {
		return 0, s.wrap(op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return n, nil
}
