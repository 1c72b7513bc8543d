package student

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aanand-mishra/uni-api/internal/config"
	"github.com/aanand-mishra/uni-api/internal/storage"
	"github.com/aanand-mishra/uni-api/internal/storage/sqlite"
	"github.com/aanand-mishra/uni-api/internal/types"
)

const adaBody = `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.com","phone":"555","gpa":3.5,"campus":true}`

func openStore(t *testing.T) storage.Storage {
	t.Helper()

	store, err := sqlite.New(&config.Config{
		StorageDriver: config.DriverSQLite,
		StoragePath:   filepath.Join(t.TempDir(), "uni.sqlite"),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func serve(h http.HandlerFunc, method, target, body string, pathValues ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// seed creates two schools and one student, Ada, in school 1.
func seed(t *testing.T, store storage.Storage) types.Student {
	t.Helper()

	ctx := context.Background()
	for _, s := range []types.School{
		{Title: "Eng", Email: "e@x.com", Phone: "111"},
		{Title: "Art", Email: "a@x.com", Phone: "222"},
	} {
		if _, err := store.CreateSchool(ctx, s); err != nil {
			t.Fatalf("seed school: %v", err)
		}
	}

	ada, err := store.CreateStudent(ctx, types.Student{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Phone: "555", GPA: 3.5, Campus: true, School: 1,
	})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return ada
}

func countStudents(t *testing.T, store storage.Storage) int {
	t.Helper()

	students, err := store.GetStudents(context.Background())
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	return len(students)
}

func TestNew(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	if _, err := store.CreateSchool(context.Background(), types.School{Title: "Eng", Email: "e@x.com", Phone: "111"}); err != nil {
		t.Fatalf("seed school: %v", err)
	}

	// The body's "school" key loses to the path.
	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.com","phone":"555","gpa":0,"campus":false,"school":99}`
	rec := serve(New(store), http.MethodPost, "/students/new/1", body, "school_id", "1")

	want := "Student added - (Student[1] Ada Lovelace, 1)"
	if rec.Code != http.StatusOK || rec.Body.String() != want {
		t.Fatalf("response = %d %q, want 200 %q", rec.Code, rec.Body.String(), want)
	}

	got, err := store.GetStudentByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get created student: %v", err)
	}
	wantStudent := types.Student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Phone: "555", GPA: 0, Campus: false, School: 1}
	if got != wantStudent {
		t.Fatalf("stored student = %+v, want %+v", got, wantStudent)
	}
}

func TestNewFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schoolID string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "missing gpa",
			schoolID: "1",
			body:     `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.com","phone":"555","campus":true}`,
			wantCode: http.StatusOK,
			wantBody: "Please fill all necessary keys",
		},
		{
			name:     "missing campus",
			schoolID: "1",
			body:     `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.com","phone":"555","gpa":3}`,
			wantCode: http.StatusOK,
			wantBody: "Please fill all necessary keys",
		},
		{
			name:     "unknown school",
			schoolID: "7",
			body:     adaBody,
			wantCode: http.StatusOK,
			wantBody: "Please provide a valid school ID",
		},
		{
			name:     "school id not a number",
			schoolID: "abc",
			body:     adaBody,
			wantCode: http.StatusBadRequest,
			wantBody: "invalid school_id: must be an integer",
		},
		{
			name:     "first name too long",
			schoolID: "1",
			body:     `{"first_name":"` + strings.Repeat("a", 21) + `","last_name":"L","email":"ada@x.com","phone":"555","gpa":3,"campus":true}`,
			wantCode: http.StatusBadRequest,
			wantBody: "field first_name must be at most 20 characters",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := openStore(t)
			if _, err := store.CreateSchool(context.Background(), types.School{Title: "Eng", Email: "e@x.com", Phone: "111"}); err != nil {
				t.Fatalf("seed school: %v", err)
			}

			rec := serve(New(store), http.MethodPost, "/students/new/"+tc.schoolID, tc.body, "school_id", tc.schoolID)
			if rec.Code != tc.wantCode || rec.Body.String() != tc.wantBody {
				t.Fatalf("response = %d %q, want %d %q", rec.Code, rec.Body.String(), tc.wantCode, tc.wantBody)
			}
			if n := countStudents(t, store); n != 0 {
				t.Fatalf("students stored = %d, want 0", n)
			}
		})
	}
}

func TestNewDuplicatePhone(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	seed(t, store)

	body := `{"first_name":"Alan","last_name":"Turing","email":"alan@x.com","phone":"555","gpa":3,"campus":true}`
	rec := serve(New(store), http.MethodPost, "/students/new/1", body, "school_id", "1")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusConflict, rec.Body.String())
	}
}

func TestGets(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	seed(t, store)

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		target   string
		path     []string
		wantBody string
	}{
		{name: "list", handler: GetList(store), target: "/students", wantBody: "[(Student[1] Ada Lovelace, 1)]"},
		{name: "by id", handler: GetByID(store), target: "/students/1", path: []string{"id", "1"}, wantBody: "(Student[1] Ada Lovelace, 1)"},
		{name: "by unknown id", handler: GetByID(store), target: "/students/9", path: []string{"id", "9"}, wantBody: "None"},
		{name: "by school", handler: GetBySchool(store), target: "/students/school/1", path: []string{"id", "1"}, wantBody: "[(Student[1] Ada Lovelace, 1)]"},
		{name: "by empty school", handler: GetBySchool(store), target: "/students/school/2", path: []string{"id", "2"}, wantBody: "[]"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(tc.handler, http.MethodGet, tc.target, "", tc.path...)
			if rec.Code != http.StatusOK || rec.Body.String() != tc.wantBody {
				t.Fatalf("response = %d %q, want 200 %q", rec.Code, rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	ada := types.Student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Phone: "555", GPA: 3.5, Campus: true, School: 1}

	tests := []struct {
		name     string
		body     string
		wantBody string
		wantAda  types.Student
		wantN    int
	}{
		{
			name:     "gpa only",
			body:     `{"id":1,"gpa":3.9}`,
			wantBody: "Student info updated - (Student[1] Ada Lovelace, 1)",
			wantAda:  types.Student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Phone: "555", GPA: 3.9, Campus: true, School: 1},
			wantN:    1,
		},
		{
			name:     "move school and leave campus",
			body:     `{"id":1,"school":2,"campus":false}`,
			wantBody: "Student info updated - (Student[1] Ada Lovelace, 2)",
			wantAda:  types.Student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Phone: "555", GPA: 3.5, Campus: false, School: 2},
			wantN:    1,
		},
		{
			name:     "move to unknown school",
			body:     `{"id":1,"school":9}`,
			wantBody: "Please provide a valid school ID",
			wantAda:  ada,
			wantN:    1,
		},
		{
			name:     "unknown id",
			body:     `{"id":999,"gpa":1}`,
			wantBody: "Please provide a valid ID to update the data",
			wantAda:  ada,
			wantN:    1,
		},
		{
			name:     "no id creates",
			body:     `{"first_name":"Alan","last_name":"Turing","email":"alan@x.com","phone":"556","gpa":3,"campus":false,"school":2}`,
			wantBody: "New student added - (Student[2] Alan Turing, 2)",
			wantAda:  ada,
			wantN:    2,
		},
		{
			name:     "no id unknown key",
			body:     `{"first_name":"Alan","title":"Eng"}`,
			wantBody: "Please provide ID of the student to update data",
			wantAda:  ada,
			wantN:    1,
		},
		{
			name:     "no id partial payload",
			body:     `{"first_name":"Alan","gpa":3}`,
			wantBody: "Please fill all necessary keys",
			wantAda:  ada,
			wantN:    1,
		},
		{
			name:     "no id unknown school",
			body:     `{"first_name":"Alan","last_name":"Turing","email":"alan@x.com","phone":"556","gpa":3,"campus":false,"school":9}`,
			wantBody: "Please provide a valid school ID",
			wantAda:  ada,
			wantN:    1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := openStore(t)
			seed(t, store)

			rec := serve(Update(store), http.MethodPut, "/students/update", tc.body)
			if rec.Code != http.StatusOK || rec.Body.String() != tc.wantBody {
				t.Fatalf("response = %d %q, want 200 %q", rec.Code, rec.Body.String(), tc.wantBody)
			}

			got, err := store.GetStudentByID(context.Background(), 1)
			if err != nil {
				t.Fatalf("get student: %v", err)
			}
			if got != tc.wantAda {
				t.Fatalf("student 1 = %+v, want %+v", got, tc.wantAda)
			}
			if n := countStudents(t, store); n != tc.wantN {
				t.Fatalf("students stored = %d, want %d", n, tc.wantN)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantBody string
		wantN    int
	}{
		{name: "existing", body: `{"id":1}`, wantBody: "Student deleted", wantN: 0},
		{name: "unknown id", body: `{"id":999}`, wantBody: "Student deleted", wantN: 1},
		{name: "missing id", body: `{}`, wantBody: "Please provide ID of the student to delete", wantN: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := openStore(t)
			seed(t, store)

			rec := serve(Delete(store), http.MethodDelete, "/students/delete", tc.body)
			if rec.Code != http.StatusOK || rec.Body.String() != tc.wantBody {
				t.Fatalf("response = %d %q, want 200 %q", rec.Code, rec.Body.String(), tc.wantBody)
			}
			if n := countStudents(t, store); n != tc.wantN {
				t.Fatalf("students stored = %d, want %d", n, tc.wantN)
			}
		})
	}
}
