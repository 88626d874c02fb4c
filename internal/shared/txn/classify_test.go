package txn

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"pklapps/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeConflictError struct{}

func (fakeConflictError) Error() string               { return "version conflict" }
func (fakeConflictError) IsConcurrencyConflict() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"app error business", apperror.New(apperror.CodeInvalidState, "Presensi ganda", http.StatusConflict), KindBusiness},
		{"app error concurrency", apperror.New(apperror.CodeConcurrencyConflict, "Versi sudah berubah", http.StatusConflict), KindConcurrencyConflict},
		{"conflict marker", fakeConflictError{}, KindConcurrencyConflict},
		{"wrapped conflict marker", fmt.Errorf("update config: %w", fakeConflictError{}), KindConcurrencyConflict},
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindUniqueViolation},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, KindSerialization},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, KindDeadlock},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, KindStatementTimeout},
		{"too many connections", &pgconn.PgError{Code: "53300"}, KindStoreBusy},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, KindStoreBusy},
		{"connection exception", &pgconn.PgError{Code: "08006"}, KindConnection},
		{"deadline exceeded", context.DeadlineExceeded, KindStatementTimeout},
		{"bad conn", driver.ErrBadConn, KindConnection},
		{"duplicate by message", errors.New(`duplicate key value violates unique constraint "uq_attendance_student_date_type"`), KindUniqueViolation},
		{"deadlock by message", errors.New("ERROR: deadlock detected"), KindDeadlock},
		{"serialize by message", errors.New("could not serialize access due to concurrent update"), KindSerialization},
		{"connection refused by message", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), KindConnection},
		{"anything else", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestKindRetryable(t *testing.T) {
	retryable := []Kind{KindConnection, KindStatementTimeout, KindDeadlock, KindSerialization, KindStoreBusy}
	for _, k := range retryable {
		assert.True(t, k.Retryable(), k.String())
	}

	permanent := []Kind{KindUnknown, KindBusiness, KindNotFound, KindUniqueViolation, KindConcurrencyConflict}
	for _, k := range permanent {
		assert.False(t, k.Retryable(), k.String())
	}
}
