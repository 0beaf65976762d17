package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrOverlap means a holding booking already covers part of the range.
	ErrOverlap = errors.New("room already booked for overlapping dates")
	// ErrDuplicate is a unique key violation.
	ErrDuplicate = errors.New("record already exists")
	// ErrStatusMismatch means a conditional status update found the row in
	// a different status than expected.
	ErrStatusMismatch = errors.New("unexpected booking status")
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// translate maps postgres constraint violations onto the package sentinels.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return ErrOverlap
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
