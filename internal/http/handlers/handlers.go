// Package handlers holds the request plumbing shared by the school and
// student handler packages: path ids, payload binding, and mapping
// validation and storage errors onto responses.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/uni-api/internal/storage"
	"github.com/aanand-mishra/uni-api/internal/utils/payload"
	"github.com/aanand-mishra/uni-api/internal/utils/response"
	"github.com/aanand-mishra/uni-api/internal/utils/validate"
)

// MsgMissingKeys answers any create whose payload lacks a required key.
const MsgMissingKeys = "Please fill all necessary keys"

// PathID parses the {name} segment of the matched route as an int64.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", name)
	}
	return id, nil
}

// DecodePayload reads the JSON body. On failure it has already answered
// 400 and returns false.
func DecodePayload(w http.ResponseWriter, r *http.Request) (payload.Payload, bool) {
	p, err := payload.Decode(w, r)
	if err != nil {
		response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
		return nil, false
	}
	return p, true
}

// BindInput decodes p into in and runs its validate tags. On failure it
// has already answered and returns false.
func BindInput(w http.ResponseWriter, r *http.Request, p payload.Payload, in any) bool {
	if err := p.Bind(in); err != nil {
		response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	if err := validate.Struct(in); err != nil {
		InvalidInput(w, r, err)
		return false
	}
	return true
}

// InvalidInput answers a failed validation. A missing required key gets
// the plain missing-keys sentence with 200, like every other handled
// message; other rule failures are a 400.
func InvalidInput(w http.ResponseWriter, r *http.Request, err error) {
	if validate.Missing(err) {
		response.Fail(w, r, http.StatusOK, response.Error(MsgMissingKeys))
		return
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		response.Fail(w, r, http.StatusBadRequest, response.ValidationError(errs))
		return
	}
	response.Fail(w, r, http.StatusBadRequest, response.GeneralError(err))
}

// StorageError answers an error returned by the store. Unique and
// foreign-key violations are the client's fault (409); anything else is
// a 500.
func StorageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrConstraint) {
		slog.Warn("constraint violation",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		response.Fail(w, r, http.StatusConflict, response.GeneralError(err))
		return
	}

	slog.Error("storage error",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	response.Fail(w, r, http.StatusInternalServerError, response.GeneralError(err))
}
