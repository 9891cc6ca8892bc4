// Package pgerrors classifies PostgreSQL errors returned by either lib/pq or pgx.
package pgerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes used by the service
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
)

// Code returns the SQLSTATE of err or "" when err is not a PostgreSQL error
func Code(err error) string {
	if err == nil {
		return ""
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// IsRetryable reports serialization failures and deadlocks
func IsRetryable(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}
