// Package repository implements the write-side storage ports with
// parameterized statements over pgx. No query text is ever assembled from
// caller-supplied values.
package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/infra"
)

const (
	pgErrCodeUniqueViolation = "23505"
	pgErrCodeFKViolation     = "23503"
)

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(infra.KindDuplicateKey, msg, err)
		case pgErrCodeFKViolation:
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}

func dateToPg(d reservation.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
