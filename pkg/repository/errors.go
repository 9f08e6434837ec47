package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// MapWriteError translates constraint failures raised by an insert or update:
// unique violations become duplicateErr and foreign key violations become
// missingRefErr. Other errors are returned unchanged.
func MapWriteError(err error, duplicateErr, missingRefErr error) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return duplicateErr
	case pgForeignKeyViolation:
		return missingRefErr
	}
	return err
}
