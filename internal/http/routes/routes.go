// Package routes builds the HTTP route table.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/uni-api/internal/http/handlers/school"
	"github.com/aanand-mishra/uni-api/internal/http/handlers/student"
	"github.com/aanand-mishra/uni-api/internal/http/middleware"
	"github.com/aanand-mishra/uni-api/internal/storage"
)

// New registers every endpoint on a ServeMux and wraps it with request
// logging.
//
// Route table:
//
//	GET    /schools                      → list schools
//	GET    /schools/{id}                 → one school
//	POST   /schools/new                  → create a school
//	PUT    /schools/update               → create or patch a school
//	DELETE /schools/delete               → delete a school
//	GET    /students                     → list students
//	GET    /students/school/{id}         → students of one school
//	GET    /students/{id}                → one student
//	POST   /students/new/{school_id}     → create a student in a school
//	PUT    /students/update              → create or patch a student
//	DELETE /students/delete              → delete a student
//
// The two routes that historically ended in a slash answer on both forms.
func New(store storage.Storage, log *slog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /schools", school.GetList(store))
	router.HandleFunc("GET /schools/{id}", school.GetByID(store))
	router.HandleFunc("POST /schools/new", school.New(store))
	router.HandleFunc("PUT /schools/update", school.Update(store))
	router.HandleFunc("DELETE /schools/delete", school.Delete(store))

	router.HandleFunc("GET /students", student.GetList(store))
	router.HandleFunc("GET /students/school/{id}", student.GetBySchool(store))
	router.HandleFunc("GET /students/school/{id}/{$}", student.GetBySchool(store))
	router.HandleFunc("GET /students/{id}", student.GetByID(store))
	router.HandleFunc("POST /students/new/{school_id}", student.New(store))
	router.HandleFunc("POST /students/new/{school_id}/{$}", student.New(store))
	router.HandleFunc("PUT /students/update", student.Update(store))
	router.HandleFunc("DELETE /students/delete", student.Delete(store))

	return middleware.RequestLogger(log)(router)
}
