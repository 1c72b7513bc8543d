//go:build cgo

package sqlite

import (
	"errors"

	mattn "github.com/mattn/go-sqlite3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

func isConstraintError(err error) bool {
	var mattnErr mattn.Error
	if errors.As(err, &mattnErr) {
		return mattnErr.Code == mattn.ErrConstraint
	}

	var modernErr *msqlite.Error
	if errors.As(err, &modernErr) {
		// Code is the extended result code; the low byte is the primary one.
		return modernErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
	}
	return false
}
