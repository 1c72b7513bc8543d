// Package response provides helpers for writing consistent HTTP responses.
//
// Every endpoint answers in plain text by default, e.g.
//
//	School added - School('1, Eng', 'e@x.com', '111')
//
// Clients that send "Accept: application/json" get the same outcome as a
// JSON envelope instead:
//
//	{ "status": "ok", "message": "School added", "data": { "id": 1, ... } }
//	{ "status": "error", "error": "Please fill all necessary keys" }
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the JSON envelope.
type Response struct {
	Status  string `json:"status"` // "ok" or "error"
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// textNone is what a lookup of an absent record prints in text mode.
const textNone = "None"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes text as a text/plain body.
func WriteText(w http.ResponseWriter, status int, text string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.WriteString(w, text)
	return err
}

// WantsJSON reports whether the client asked for the JSON envelope.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// OK answers 200 with message and data.
//
// Text mode prints "<message> - <data>", or only the one that is set;
// data is rendered through its String method.
func OK(w http.ResponseWriter, r *http.Request, message string, data any) {
	if WantsJSON(r) {
		_ = WriteJSON(w, http.StatusOK, Response{Status: StatusOK, Message: message, Data: data})
		return
	}

	text := message
	switch {
	case data == nil:
	case message == "":
		text = fmt.Sprint(data)
	default:
		text = message + " - " + fmt.Sprint(data)
	}
	_ = WriteText(w, http.StatusOK, text)
}

// Fail answers with status and an error envelope; text mode prints only
// resp.Error.
func Fail(w http.ResponseWriter, r *http.Request, status int, resp Response) {
	if WantsJSON(r) {
		_ = WriteJSON(w, status, resp)
		return
	}
	_ = WriteText(w, status, resp.Error)
}

// NotFound answers a lookup of an absent record: "None" with 200 in text
// mode, a 404 error envelope in JSON mode.
func NotFound(w http.ResponseWriter, r *http.Request, err error) {
	if WantsJSON(r) {
		_ = WriteJSON(w, http.StatusNotFound, GeneralError(err))
		return
	}
	_ = WriteText(w, http.StatusOK, textNone)
}

// Error wraps a user-facing sentence into our standard Response shape.
func Error(message string) Response {
	return Response{
		Status: StatusError,
		Error:  message,
	}
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (DB failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Error(err.Error())
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// Example output:
//
//	{ "status": "error", "error": "field title must be at most 30 characters" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Error(strings.Join(errMessages, ", "))
}
