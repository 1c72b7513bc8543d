// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import (
	"fmt"
	"strings"
)

// Field names accepted in request payloads. The update handlers use these
// lists to reject payloads carrying keys that do not belong to the entity.
var (
	SchoolFields  = []string{"title", "email", "phone"}
	StudentFields = []string{"first_name", "last_name", "email", "phone", "gpa", "campus", "school"}
)

// School represents a school record.
//
// Struct tags serve three purposes:
//
//  1. json:"..."     — the key used in request payloads and JSON responses.
//  2. db:"..."       — the column name sqlx scans into.
//  3. validate:"..." — rules checked by go-playground/validator. Only the
//     length limits live here; presence is checked on SchoolInput.
type School struct {
	ID    int64  `json:"id"    db:"id"`
	Title string `json:"title" db:"title" validate:"max=30"`
	Email string `json:"email" db:"email" validate:"max=120"`
	Phone string `json:"phone" db:"phone" validate:"max=20"`
}

// String renders the record the way every text response shows it:
//
//	School('1, Eng', 'e@x.com', '111')
func (s School) String() string {
	return fmt.Sprintf("School('%d, %s', '%s', '%s')", s.ID, s.Title, s.Email, s.Phone)
}

// Schools is a list of schools with a bracketed text form.
type Schools []School

func (l Schools) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Student represents a student record. School is the id of the school
// the student belongs to (foreign key to School.ID).
type Student struct {
	ID        int64   `json:"id"         db:"id"`
	FirstName string  `json:"first_name" db:"first_name" validate:"max=20"`
	LastName  string  `json:"last_name"  db:"last_name"  validate:"max=20"`
	Email     string  `json:"email"      db:"email"      validate:"max=120"`
	Phone     string  `json:"phone"      db:"phone"      validate:"max=20"`
	GPA       float64 `json:"gpa"        db:"gpa"`
	Campus    bool    `json:"campus"     db:"campus"`
	School    int64   `json:"school"     db:"school"`
}

// String renders the record as (Student[1] Ada Lovelace, 2).
func (s Student) String() string {
	return fmt.Sprintf("(Student[%d] %s %s, %d)", s.ID, s.FirstName, s.LastName, s.School)
}

type Students []Student

func (l Students) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ─────────────────────────────────────────────────────────────────────────────
// Input types
//
// Payload fields are pointers so "key absent" (nil) can be told apart from
// a zero value: a student with gpa 0 or campus false is still complete.
// For pointer fields validator's "required" means "not nil", and the
// remaining rules (max=…) are applied to the pointed-to value.
// ─────────────────────────────────────────────────────────────────────────────

// SchoolInput is the payload of school create and update requests.
type SchoolInput struct {
	Title *string `json:"title" validate:"required,max=30"`
	Email *string `json:"email" validate:"required,max=120"`
	Phone *string `json:"phone" validate:"required,max=20"`
}

// School builds a new record from a validated input.
func (in SchoolInput) School() School {
	var s School
	in.Apply(&s)
	return s
}

// Apply copies every present field onto s and leaves the others alone.
func (in SchoolInput) Apply(s *School) {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
}

// StudentInput is the payload of student create and update requests.
type StudentInput struct {
	FirstName *string  `json:"first_name" validate:"required,max=20"`
	LastName  *string  `json:"last_name"  validate:"required,max=20"`
	Email     *string  `json:"email"      validate:"required,max=120"`
	Phone     *string  `json:"phone"      validate:"required,max=20"`
	GPA       *float64 `json:"gpa"        validate:"required"`
	Campus    *bool    `json:"campus"     validate:"required"`
	School    *int64   `json:"school"     validate:"required"`
}

func (in StudentInput) Student() Student {
	var s Student
	in.Apply(&s)
	return s
}

func (in StudentInput) Apply(s *Student) {
	if in.FirstName != nil {
		s.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		s.LastName = *in.LastName
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.GPA != nil {
		s.GPA = *in.GPA
	}
	if in.Campus != nil {
		s.Campus = *in.Campus
	}
	if in.School != nil {
		s.School = *in.School
	}
}
