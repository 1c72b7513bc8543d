// Package student contains all HTTP handlers for the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (storage)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access `store` even after the factory call has returned.
package student

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/uni-api/internal/http/handlers"
	"github.com/aanand-mishra/uni-api/internal/storage"
	"github.com/aanand-mishra/uni-api/internal/types"
	"github.com/aanand-mishra/uni-api/internal/utils/response"
	"github.com/aanand-mishra/uni-api/internal/utils/validate"
)

const (
	msgProvideUpdateID = "Please provide ID of the student to update data"
	msgInvalidUpdateID = "Please provide a valid ID to update the data"
	msgProvideDeleteID = "Please provide ID of the student to delete"
	msgInvalidSchool   = "Please provide a valid school ID"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /students
//
//	[(Student[1] Ada Lovelace, 1), (Student[2] Alan Turing, 1)]
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		response.OK(w, r, "", types.Students(students))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetBySchool handles GET /students/school/{id}
// Lists the students whose school is {id}; an unknown school lists [].
// ─────────────────────────────────────────────────────────────────────────────
func GetBySchool(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schoolID, err := handlers.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("getting students of a school", slog.Int64("school", schoolID))

		students, err := store.GetStudentsBySchool(r.Context(), schoolID)
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		response.OK(w, r, "", types.Students(students))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
// Prints the student, or None when no student has that id.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := store.GetStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, r, err)
			return
		}
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		response.OK(w, r, "", student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students/new/{school_id}
//
// Request body (JSON), all keys required; the school comes from the path
// and a "school" key in the body is ignored:
//
//	{ "first_name": "Ada", "last_name": "Lovelace", "email": "ada@x.com",
//	  "phone": "555", "gpa": 3.5, "campus": true }
//
// Success:
//
//	Student added - (Student[1] Ada Lovelace, 1)
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schoolID, err := handlers.PathID(r, "school_id")
		if err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("creating a student", slog.Int64("school", schoolID))

		p, ok := handlers.DecodePayload(w, r)
		if !ok {
			return
		}

		var in types.StudentInput
		if err := p.Bind(&in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		in.School = &schoolID

		if err := validate.Struct(in); err != nil {
			handlers.InvalidInput(w, r, err)
			return
		}

		create(w, r, store, in.Student(), "Student added")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /students/update
//
// Without "id" the payload describes a new student: its keys must all be
// student fields (school included), and all of them must be present.
//
// With "id" only the keys present are changed:
//
//	{ "id": 1, "gpa": 3.9 }
//	→ Student info updated - (Student[1] Ada Lovelace, 1)
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := handlers.DecodePayload(w, r)
		if !ok {
			return
		}

		if !p.Has("id") {
			if !p.OnlyKeys(types.StudentFields) {
				response.Fail(w, r, http.StatusOK, response.Error(msgProvideUpdateID))
				return
			}

			slog.Info("creating a student through update")

			var in types.StudentInput
			if !handlers.BindInput(w, r, p, &in) {
				return
			}

			create(w, r, store, in.Student(), "New student added")
			return
		}

		id, ok := p.ID()
		if !ok {
			response.Fail(w, r, http.StatusOK, response.Error(msgInvalidUpdateID))
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		student, err := store.GetStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.Fail(w, r, http.StatusOK, response.Error(msgInvalidUpdateID))
			return
		}
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		var in types.StudentInput
		if err := p.Bind(&in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if in.School != nil && *in.School != student.School {
			exists, err := schoolExists(r.Context(), store, *in.School)
			if err != nil {
				handlers.StorageError(w, r, err)
				return
			}
			if !exists {
				response.Fail(w, r, http.StatusOK, response.Error(msgInvalidSchool))
				return
			}
		}

		in.Apply(&student)
		if err := validate.Struct(student); err != nil {
			handlers.InvalidInput(w, r, err)
			return
		}

		updated, err := store.UpdateStudent(r.Context(), student)
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.OK(w, r, "Student info updated", updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /students/delete
//
// Request body: { "id": 1 }. Deleting an id that does not exist still
// answers "Student deleted".
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := handlers.DecodePayload(w, r)
		if !ok {
			return
		}

		id, ok := p.ID()
		if !ok {
			response.Fail(w, r, http.StatusOK, response.Error(msgProvideDeleteID))
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		n, err := store.DeleteStudentByID(r.Context(), id)
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id), slog.Int64("rows", n))
		response.OK(w, r, "Student deleted", nil)
	}
}

// create stores a validated student after checking its school exists.
func create(w http.ResponseWriter, r *http.Request, store storage.Storage, student types.Student, message string) {
	exists, err := schoolExists(r.Context(), store, student.School)
	if err != nil {
		handlers.StorageError(w, r, err)
		return
	}
	if !exists {
		response.Fail(w, r, http.StatusOK, response.Error(msgInvalidSchool))
		return
	}

	created, err := store.CreateStudent(r.Context(), student)
	if err != nil {
		handlers.StorageError(w, r, err)
		return
	}

	slog.Info("student created", slog.Int64("id", created.ID))
	response.OK(w, r, message, created)
}

func schoolExists(ctx context.Context, store storage.Storage, id int64) (bool, error) {
	_, err := store.GetSchoolByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
