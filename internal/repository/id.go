package repository

import "github.com/google/uuid"

// validID reports whether id parses as a UUID. The primary keys are uuid
// columns, so a malformed path parameter in WHERE id=$1 would otherwise
// surface as a cast error (SQLSTATE 22P02) instead of a missing row. Lookups
// short-circuit to pgx.ErrNoRows for ids that cannot match any row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
