package txn

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"pklapps/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind mengelompokkan error berdasarkan cara penanganannya:
// bisnis dan konflik tidak pernah di-retry, transient boleh.
type Kind int

const (
	KindUnknown Kind = iota
	KindBusiness
	KindNotFound
	KindUniqueViolation
	KindConcurrencyConflict
	KindConnection
	KindStatementTimeout
	KindDeadlock
	KindSerialization
	KindStoreBusy
)

func (k Kind) String() string {
	switch k {
	case KindBusiness:
		return "business"
	case KindNotFound:
		return "not_found"
	case KindUniqueViolation:
		return "unique_violation"
	case KindConcurrencyConflict:
		return "concurrency_conflict"
	case KindConnection:
		return "connection"
	case KindStatementTimeout:
		return "statement_timeout"
	case KindDeadlock:
		return "deadlock"
	case KindSerialization:
		return "serialization"
	case KindStoreBusy:
		return "store_busy"
	default:
		return "unknown"
	}
}

// Retryable: hanya kegagalan store yang bersifat sementara.
func (k Kind) Retryable() bool {
	switch k {
	case KindConnection, KindStatementTimeout, KindDeadlock, KindSerialization, KindStoreBusy:
		return true
	default:
		return false
	}
}

// conflictMarker diimplementasikan oleh verlock.ConflictError tanpa perlu import cycle.
type conflictMarker interface {
	IsConcurrencyConflict() bool
}

// Classify menentukan Kind dari sebuah error.
// Urutan pengecekan: error domain dulu, baru error level store.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var marker conflictMarker
	if errors.As(err, &marker) && marker.IsConcurrencyConflict() {
		return KindConcurrencyConflict
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperror.CodeConcurrencyConflict {
			return KindConcurrencyConflict
		}
		return KindBusiness
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return KindUniqueViolation
		case "40001":
			return KindSerialization
		case "40P01":
			return KindDeadlock
		case "57014":
			return KindStatementTimeout
		case "53300", "55P03":
			return KindStoreBusy
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return KindConnection
		}
		return KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindStatementTimeout
	}

	if errors.Is(err, driver.ErrBadConn) {
		return KindConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}

	// Driver tertentu hanya melaporkan lewat pesan teks
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key value"):
		return KindUniqueViolation
	case strings.Contains(msg, "deadlock detected"):
		return KindDeadlock
	case strings.Contains(msg, "could not serialize access"):
		return KindSerialization
	case strings.Contains(msg, "canceling statement due to statement timeout"):
		return KindStatementTimeout
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "bad connection"):
		return KindConnection
	}

	return KindUnknown
}
