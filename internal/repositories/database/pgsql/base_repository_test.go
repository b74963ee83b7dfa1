package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: apperrors.ErrNotFound},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgSerializationFailure}, want: apperrors.ErrConcurrencyConflict},
		{name: "deadlock", err: &pgconn.PgError{Code: pgDeadlockDetected}, want: apperrors.ErrConcurrencyConflict},
		{name: "lock timeout", err: &pgconn.PgError{Code: pgLockNotAvailable}, want: apperrors.ErrConcurrencyConflict},
		{name: "second open session", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: openSessionIndex}, want: apperrors.ErrSessionAlreadyOpen},
		{name: "other unique violation", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "sales_pkey"}, want: apperrors.ErrDuplicate},
		{name: "check violation", err: &pgconn.PgError{Code: pgCheckViolation}, want: apperrors.ErrValidation},
		{name: "integer out of range", err: &pgconn.PgError{Code: pgNumericOutOfRange, Message: "integer out of range"}, want: apperrors.ErrValidation},
		{name: "unknown driver error", err: errors.New("connection reset"), want: apperrors.ErrInternal},
		{name: "cancelled", err: context.Canceled, want: context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPgError(tt.err, "op")
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.NoError(t, mapPgError(nil, "op"))
	assert.True(t, apperrors.IsRetryable(mapPgError(&pgconn.PgError{Code: pgDeadlockDetected}, "op")))
}
