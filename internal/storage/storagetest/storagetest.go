// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/aanand-mishra/uni-api/internal/storage"
	"github.com/aanand-mishra/uni-api/internal/types"
)

// Opener returns an empty store. It is called once per subtest and is
// responsible for closing the store through t.Cleanup.
type Opener func(t *testing.T) storage.Storage

// Run executes the conformance suite. Subtests run sequentially so
// backends sharing one database only need to empty it in open.
func Run(t *testing.T, open Opener) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"SchoolRoundTrip", testSchoolRoundTrip},
		{"SchoolsListedInIDOrder", testSchoolsListedInIDOrder},
		{"UpdateSchool", testUpdateSchool},
		{"DeleteSchool", testDeleteSchool},
		{"SchoolUniqueness", testSchoolUniqueness},
		{"StudentRoundTrip", testStudentRoundTrip},
		{"StudentsBySchool", testStudentsBySchool},
		{"UpdateStudent", testUpdateStudent},
		{"DeleteStudent", testDeleteStudent},
		{"StudentForeignKey", testStudentForeignKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, open(t))
		})
	}
}

func mustCreateSchool(t *testing.T, s storage.Storage, title, email, phone string) types.School {
	t.Helper()

	school, err := s.CreateSchool(context.Background(), types.School{Title: title, Email: email, Phone: phone})
	if err != nil {
		t.Fatalf("create school %q: %v", title, err)
	}
	return school
}

func mustCreateStudent(t *testing.T, s storage.Storage, student types.Student) types.Student {
	t.Helper()

	created, err := s.CreateStudent(context.Background(), student)
	if err != nil {
		t.Fatalf("create student %q: %v", student.Email, err)
	}
	return created
}

func testSchoolRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	created := mustCreateSchool(t, s, "Eng", "e@x.com", "111")
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := s.GetSchoolByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get school: %v", err)
	}
	if got != created {
		t.Fatalf("school = %+v, want %+v", got, created)
	}

	if _, err := s.GetSchoolByID(ctx, created.ID+100); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get unknown school error = %v, want %v", err, storage.ErrNotFound)
	}
}

func testSchoolsListedInIDOrder(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	empty, err := s.GetSchools(ctx)
	if err != nil {
		t.Fatalf("list schools: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("schools = %#v, want empty non-nil slice", empty)
	}

	first := mustCreateSchool(t, s, "A", "a@x.com", "1")
	second := mustCreateSchool(t, s, "B", "b@x.com", "2")

	schools, err := s.GetSchools(ctx)
	if err != nil {
		t.Fatalf("list schools: %v", err)
	}
	if len(schools) != 2 || schools[0] != first || schools[1] != second {
		t.Fatalf("schools = %+v, want [%+v %+v]", schools, first, second)
	}
}

func testUpdateSchool(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	school := mustCreateSchool(t, s, "Eng", "e@x.com", "111")
	school.Title = "Engineering"

	updated, err := s.UpdateSchool(ctx, school)
	if err != nil {
		t.Fatalf("update school: %v", err)
	}
	if updated != school {
		t.Fatalf("updated = %+v, want %+v", updated, school)
	}

	school.ID += 100
	if _, err := s.UpdateSchool(ctx, school); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update unknown school error = %v, want %v", err, storage.ErrNotFound)
	}
}

func testDeleteSchool(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	school := mustCreateSchool(t, s, "Eng", "e@x.com", "111")

	n, err := s.DeleteSchoolByID(ctx, school.ID+100)
	if err != nil || n != 0 {
		t.Fatalf("delete unknown school = %d, %v, want 0, nil", n, err)
	}

	n, err = s.DeleteSchoolByID(ctx, school.ID)
	if err != nil || n != 1 {
		t.Fatalf("delete school = %d, %v, want 1, nil", n, err)
	}
	if _, err := s.GetSchoolByID(ctx, school.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted school error = %v, want %v", err, storage.ErrNotFound)
	}
}

func testSchoolUniqueness(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	mustCreateSchool(t, s, "Eng", "e@x.com", "111")

	if _, err := s.CreateSchool(ctx, types.School{Title: "Other", Email: "e@x.com", Phone: "222"}); !errors.Is(err, storage.ErrConstraint) {
		t.Fatalf("duplicate email error = %v, want %v", err, storage.ErrConstraint)
	}
	if _, err := s.CreateSchool(ctx, types.School{Title: "Other", Email: "o@x.com", Phone: "111"}); !errors.Is(err, storage.ErrConstraint) {
		t.Fatalf("duplicate phone error = %v, want %v", err, storage.ErrConstraint)
	}
}

func testStudentRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	school := mustCreateSchool(t, s, "Eng", "e@x.com", "111")
	created := mustCreateStudent(t, s, types.Student{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Phone:     "555",
		GPA:       3.5,
		Campus:    false,
		School:    school.ID,
	})
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := s.GetStudentByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if got != created {
		t.Fatalf("student = %+v, want %+v", got, created)
	}
	if got.GPA != 3.5 || got.Campus || got.School != school.ID {
		t.Fatalf("student fields = %+v, want gpa 3.5, campus false, school %d", got, school.ID)
	}

	all, err := s.GetStudents(ctx)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(all) != 1 || all[0] != created {
		t.Fatalf("students = %+v, want [%+v]", all, created)
	}
}

func testStudentsBySchool(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	eng := mustCreateSchool(t, s, "Eng", "e@x.com", "111")
	art := mustCreateSchool(t, s, "Art", "a@x.com", "222")
	ada := mustCreateStudent(t, s, types.Student{FirstName: "Ada", LastName: "L", Email: "ada@x.com", Phone: "1", GPA: 4, Campus: true, School: eng.ID})
	mustCreateStudent(t, s, types.Student{FirstName: "Frida", LastName: "K", Email: "frida@x.com", Phone: "2", GPA: 3, School: art.ID})

	students, err := s.GetStudentsBySchool(ctx, eng.ID)
	if err != nil {
		t.Fatalf("list by school: %v", err)
	}
	if len(students) != 1 || students[0] != ada {
		t.Fatalf("students = %+v, want [%+v]", students, ada)
	}

	none, err := s.GetStudentsBySchool(ctx, art.ID+100)
	if err != nil {
		t.Fatalf("list by unknown school: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("students = %#v, want empty non-nil slice", none)
	}
}

func testUpdateStudent(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	school := mustCreateSchool(t, s, "Eng", "e@x.com", "111")
	student := mustCreateStudent(t, s, types.Student{FirstName: "Ada", LastName: "L", Email: "ada@x.com", Phone: "1", GPA: 2, School: school.ID})
	student.GPA = 3.9
	student.Campus = true

	updated, err := s.UpdateStudent(ctx, student)
	if err != nil {
		t.Fatalf("update student: %v", err)
	}
	if updated != student {
		t.Fatalf("updated = %+v, want %+v", updated, student)
	}

	student.ID += 100
	if _, err := s.UpdateStudent(ctx, student); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update unknown student error = %v, want %v", err, storage.ErrNotFound)
	}
}

func testDeleteStudent(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	school := mustCreateSchool(t, s, "Eng", "e@x.com", "111")
	student := mustCreateStudent(t, s, types.Student{FirstName: "Ada", LastName: "L", Email: "ada@x.com", Phone: "1", GPA: 2, School: school.ID})

	n, err := s.DeleteStudentByID(ctx, student.ID+100)
	if err != nil || n != 0 {
		t.Fatalf("delete unknown student = %d, %v, want 0, nil", n, err)
	}
	n, err = s.DeleteStudentByID(ctx, student.ID)
	if err != nil || n != 1 {
		t.Fatalf("delete student = %d, %v, want 1, nil", n, err)
	}
	if _, err := s.GetStudentByID(ctx, student.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted student error = %v, want %v", err, storage.ErrNotFound)
	}
}

func testStudentForeignKey(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	school := mustCreateSchool(t, s, "Eng", "e@x.com", "111")

	_, err := s.CreateStudent(ctx, types.Student{FirstName: "Ada", LastName: "L", Email: "ada@x.com", Phone: "1", GPA: 2, School: school.ID + 100})
	if !errors.Is(err, storage.ErrConstraint) {
		t.Fatalf("unknown school error = %v, want %v", err, storage.ErrConstraint)
	}

	mustCreateStudent(t, s, types.Student{FirstName: "Ada", LastName: "L", Email: "ada@x.com", Phone: "1", GPA: 2, School: school.ID})
	if _, err := s.DeleteSchoolByID(ctx, school.ID); !errors.Is(err, storage.ErrConstraint) {
		t.Fatalf("delete referenced school error = %v, want %v", err, storage.ErrConstraint)
	}
}
