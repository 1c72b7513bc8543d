//go:build !cgo

package sqlite

import (
	"errors"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Without cgo the mattn driver is a stub that never opens a database, so
// only modernc errors can reach this point.
func isConstraintError(err error) bool {
	var modernErr *msqlite.Error
	if errors.As(err, &modernErr) {
		return modernErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
	}
	return false
}
