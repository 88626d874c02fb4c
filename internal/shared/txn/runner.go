package txn

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pklapps/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultTimeout = 5 * time.Second

// UnitOfWork dijalankan di dalam satu transaksi. Handle tx tidak boleh
// disimpan di luar fungsi ini; setiap retry mendapat tx yang baru.
type UnitOfWork func(tx *gorm.DB) error

type Options struct {
	OperationName string
	Isolation     sql.IsolationLevel
	Timeout       time.Duration
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
}

func (o Options) withDefaults() Options {
	if o.OperationName == "" {
		o.OperationName = "txn"
	}
	if o.Isolation == sql.LevelDefault {
		o.Isolation = sql.LevelReadCommitted
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = DefaultMaxDelay
	}
	return o
}

// RetriesExhaustedError menandai kegagalan transient yang tetap gagal
// setelah semua attempt habis, supaya caller bisa membedakannya dari
// kegagalan pada attempt pertama.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

//go:generate mockgen -source=runner.go -destination=mock/runner_mock.go -package=mock
type Runner interface {
	Run(ctx context.Context, opts Options, fn UnitOfWork) error
}

type runner struct {
	db       *gorm.DB
	recorder Recorder
	logger   *zap.Logger
}

type RunnerOption func(*runner)

func WithRecorder(rec Recorder) RunnerOption {
	return func(r *runner) { r.recorder = rec }
}

func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *runner) { r.logger = logger }
}

func NewRunner(db *gorm.DB, opts ...RunnerOption) Runner {
	r := &runner{
		db:       db,
		recorder: NopRecorder{},
		logger:   zap.L().Named("txn"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run mengeksekusi unit of work dalam transaksi dengan isolation level dan
// timeout yang diminta. Kegagalan transient diulang dari awal dengan tx baru;
// error bisnis dan konflik langsung diteruskan tanpa retry.
func (r *runner) Run(ctx context.Context, opts Options, fn UnitOfWork) error {
	opts = opts.withDefaults()
	policy := Policy{
		MaxAttempts: opts.MaxRetries + 1,
		BaseDelay:   opts.BaseDelay,
		MaxDelay:    opts.MaxDelay,
	}

	log := contextutil.GetLogger(ctx, r.logger)
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err := r.runOnce(ctx, opts, fn)
		if err == nil {
			r.recorder.Record(opts.OperationName, attempt, time.Since(start), nil)
			return nil
		}

		lastErr = err
		kind := Classify(err)
		retry, delay := policy.ShouldRetry(kind, attempt)
		if !retry {
			r.recorder.Record(opts.OperationName, attempt, time.Since(start), err)
			if kind.Retryable() {
				// Attempt habis tapi error-nya masih transient
				log.Error("transaction retries exhausted",
					zap.String("operation", opts.OperationName),
					zap.String("kind", kind.String()),
					zap.Int("attempts", attempt),
					zap.Duration("elapsed", time.Since(start)),
					zap.Error(err),
				)
				return &RetriesExhaustedError{Attempts: attempt, Err: err}
			}
			if kind == KindUnknown {
				log.Error("transaction failed with unclassified error",
					zap.String("operation", opts.OperationName),
					zap.Int("attempts", attempt),
					zap.Error(err),
				)
			}
			return err
		}

		log.Warn("transient transaction failure, retrying",
			zap.String("operation", opts.OperationName),
			zap.String("kind", kind.String()),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			r.recorder.Record(opts.OperationName, attempt, time.Since(start), ctx.Err())
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func (r *runner) runOnce(ctx context.Context, opts Options, fn UnitOfWork) error {
	txCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tx := r.db.WithContext(txCtx).Begin(&sql.TxOptions{Isolation: opts.Isolation})
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// RunValue adalah helper untuk unit of work yang mengembalikan nilai.
func RunValue[T any](ctx context.Context, r Runner, opts Options, fn func(tx *gorm.DB) (T, error)) (T, error) {
	var result T
	err := r.Run(ctx, opts, func(tx *gorm.DB) error {
		v, err := fn(tx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
