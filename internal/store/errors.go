package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey 違反唯一性約束 (SQLSTATE 23505)
	ErrDuplicateKey = errors.New("duplicate key")
)

const uniqueViolation = "23505"

// mapError 把 pgx 錯誤轉成本套件的 sentinel，保留原始錯誤作為 cause
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &duplicateKeyError{constraint: pgErr.ConstraintName, cause: err}
	}
	return err
}

type duplicateKeyError struct {
	constraint string
	cause      error
}

func (e *duplicateKeyError) Error() string {
	return ErrDuplicateKey.Error() + " (" + e.constraint + "): " + e.cause.Error()
}

func (e *duplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }
func (e *duplicateKeyError) Unwrap() error        { return e.cause }
