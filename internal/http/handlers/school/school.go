// Package school contains all HTTP handlers for the School resource.
//
// Every exported function is a factory: it receives the storage once at
// route registration and returns the http.HandlerFunc that runs on every
// request.
//
//	router.HandleFunc("POST /schools/new", school.New(store))
package school

import (
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
	msgProvideUpdateID = "Please provide ID of the school to update data"
	msgInvalidUpdateID = "Please provide a valid ID to update the data"
	msgProvideDeleteID = "Please provide ID of the school to delete"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /schools
//
//	[School('1, Eng', 'e@x.com', '111'), School('2, Art', 'a@x.com', '222')]
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all schools")

		schools, err := store.GetSchools(r.Context())
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		response.OK(w, r, "", types.Schools(schools))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /schools/{id}
//
// Prints the school, or None when no school has that id.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("getting a school", slog.Int64("id", id))

		school, err := store.GetSchoolByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.NotFound(w, r, err)
			return
		}
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		response.OK(w, r, "", school)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /schools/new
//
// Request body (JSON), all keys required:
//
//	{ "title": "Eng", "email": "e@x.com", "phone": "111" }
//
// Success:
//
//	School added - School('1, Eng', 'e@x.com', '111')
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a school")

		p, ok := handlers.DecodePayload(w, r)
		if !ok {
			return
		}

		var in types.SchoolInput
		if !handlers.BindInput(w, r, p, &in) {
			return
		}

		school, err := store.CreateSchool(r.Context(), in.School())
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		slog.Info("school created", slog.Int64("id", school.ID))
		response.OK(w, r, "School added", school)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /schools/update
//
// Without "id" the payload describes a new school: its keys must all be
// school fields, and all of them must be present.
//
//	{ "title": "Eng", "email": "e@x.com", "phone": "111" }
//	→ New school added - School('1, Eng', 'e@x.com', '111')
//
// With "id" only the keys present are changed:
//
//	{ "id": 1, "title": "Engineering" }
//	→ School info updated - School('1, Engineering', 'e@x.com', '111')
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := handlers.DecodePayload(w, r)
		if !ok {
			return
		}

		if !p.Has("id") {
			if !p.OnlyKeys(types.SchoolFields) {
				response.Fail(w, r, http.StatusOK, response.Error(msgProvideUpdateID))
				return
			}

			slog.Info("creating a school through update")

			var in types.SchoolInput
			if !handlers.BindInput(w, r, p, &in) {
				return
			}

			school, err := store.CreateSchool(r.Context(), in.School())
			if err != nil {
				handlers.StorageError(w, r, err)
				return
			}

			slog.Info("school created", slog.Int64("id", school.ID))
			response.OK(w, r, "New school added", school)
			return
		}

		id, ok := p.ID()
		if !ok {
			response.Fail(w, r, http.StatusOK, response.Error(msgInvalidUpdateID))
			return
		}
		slog.Info("updating a school", slog.Int64("id", id))

		school, err := store.GetSchoolByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.Fail(w, r, http.StatusOK, response.Error(msgInvalidUpdateID))
			return
		}
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		var in types.SchoolInput
		if err := p.Bind(&in); err != nil {
			response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		in.Apply(&school)

		if err := validate.Struct(school); err != nil {
			handlers.InvalidInput(w, r, err)
			return
		}

		updated, err := store.UpdateSchool(r.Context(), school)
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		slog.Info("school updated", slog.Int64("id", id))
		response.OK(w, r, "School info updated", updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /schools/delete
//
// Request body: { "id": 1 }. Deleting an id that does not exist still
// answers "School deleted".
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
		slog.Info("deleting a school", slog.Int64("id", id))

		n, err := store.DeleteSchoolByID(r.Context(), id)
		if err != nil {
			handlers.StorageError(w, r, err)
			return
		}

		slog.Info("school deleted", slog.Int64("id", id), slog.Int64("rows", n))
		response.OK(w, r, "School deleted", nil)
	}
}
