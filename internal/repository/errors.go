// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a
// missing venue or artist must send the caller back to the list page,
// while a show pointing at a missing parent is a bad submission.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrVenueNotFound is returned when no venue has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// ErrUnknownReference is returned when a show references an artist or
// a venue that does not exist. Handlers should translate this into a
// 400 response.
var ErrUnknownReference = errors.New("show references an unknown artist or venue")

// mysqlForeignKeyViolation is ER_NO_REFERENCED_ROW_2.
const mysqlForeignKeyViolation = 1452

// isForeignKeyViolation reports whether err is a referential integrity
// failure from either supported driver.
func isForeignKeyViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}
