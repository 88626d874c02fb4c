package timewindow

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pklapps/internal/shared/apperror"
	"pklapps/internal/shared/contextutil"
	"pklapps/internal/shared/txn"
	"pklapps/internal/shared/verlock"
	timewindowerrors "pklapps/internal/timewindow/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheKey = "timewindow:current"
	cacheTTL = 30 * time.Second
)

//go:generate mockgen -source=timewindow_service.go -destination=mock/timewindow_service_mock.go -package=mock
type Service interface {
	// Get mengembalikan konfigurasi beserta versinya untuk form admin.
	Get(ctx context.Context) (ConfigResponse, error)
	// Update menerapkan perubahan lewat compare-and-swap dengan versi
	// yang terakhir dibaca caller.
	Update(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)
	// Current dipakai alur submission; hasilnya di-cache singkat dan
	// pembacaan yang bersamaan digabungkan.
	Current(ctx context.Context) (*Config, error)
	// EnsureDefault membuat baris konfigurasi awal kalau belum ada.
	EnsureDefault(ctx context.Context) error
}

type service struct {
	runner txn.Runner
	repo   Repository
	store  *verlock.Store[*Config]
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	runner txn.Runner,
	repo Repository,
	store *verlock.Store[*Config],
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timewindow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		runner: runner,
		repo:   repo,
		store:  store,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Get(ctx context.Context) (ConfigResponse, error) {
	cfg, err := s.repo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, timewindowerrors.ErrConfigNotFound
		}
		return ConfigResponse{}, err
	}
	return toResponse(cfg), nil
}

func (s *service) Update(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error) {
	if err := validateWindows(req); err != nil {
		return ConfigResponse{}, err
	}

	strategy := verlock.FailFast
	if req.RetryWithLatest {
		strategy = verlock.RetryWithLatest
	}

	var updated *Config
	err := s.runner.Run(ctx, txn.Options{OperationName: "timewindow.update"}, func(tx *gorm.DB) error {
		current, err := s.repo.WithTx(tx).GetCurrent(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return timewindowerrors.ErrConfigNotFound
			}
			return err
		}

		cfg, err := s.store.WithTx(tx).CompareAndSwap(
			ctx, current.ID, *req.ExpectedVersion,
			func(cur *Config) (map[string]any, error) {
				return map[string]any{
					"check_in_start":  req.CheckInStart,
					"check_in_end":    req.CheckInEnd,
					"check_out_start": req.CheckOutStart,
					"check_out_end":   req.CheckOutEnd,
					"enforcement":     req.Enforcement,
					"is_active":       *req.IsActive,
					"updated_at":      time.Now().UTC(),
				}, nil
			},
			strategy,
		)
		if err != nil {
			return err
		}
		updated = cfg
		return nil
	})
	if err != nil {
		return ConfigResponse{}, s.mapUpdateError(ctx, err)
	}

	s.invalidateCache(ctx)

	log := contextutil.GetLogger(ctx, s.logger)
	log.Info("time window config updated",
		zap.Int64("version", updated.Version),
		zap.String("enforcement", updated.Enforcement),
	)
	return toResponse(updated), nil
}

func (s *service) mapUpdateError(ctx context.Context, err error) error {
	var conflict *verlock.ConflictError
	if errors.As(err, &conflict) {
		log := contextutil.GetLogger(ctx, s.logger)
		fields := []zap.Field{zap.Int64("expected_version", conflict.ExpectedVersion)}
		if conflict.ActualVersion != nil {
			fields = append(fields, zap.Int64("actual_version", *conflict.ActualVersion))
		}
		log.Warn("time window update lost version race", fields...)
		return apperror.Wrap(
			err,
			apperror.CodeConcurrencyConflict,
			timewindowerrors.ErrVersionConflict.Message,
			timewindowerrors.ErrVersionConflict.HTTPStatus,
		)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var exhausted *txn.RetriesExhaustedError
	if errors.As(err, &exhausted) {
		return apperror.Wrap(err, apperror.CodeServiceUnavailable,
			apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}
	return err
}

func (s *service) Current(ctx context.Context) (*Config, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cfg Config
			if err := json.Unmarshal([]byte(raw), &cfg); err == nil {
				return &cfg, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		cfg, err := s.repo.GetCurrent(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Tanpa baris konfigurasi, submission berjalan tanpa jendela jam
				return (*Config)(nil), nil
			}
			return nil, err
		}

		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(cfg); marshalErr == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err()
			}
		}
		return cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Config), nil
}

func (s *service) EnsureDefault(ctx context.Context) error {
	_, err := s.repo.GetCurrent(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	created, err := s.store.CreateWithVersion(ctx, &Config{
		ID:            uuid.New(),
		CheckInStart:  "06:30",
		CheckInEnd:    "09:00",
		CheckOutStart: "15:00",
		CheckOutEnd:   "18:00",
		Enforcement:   EnforcementAnnotateOnly,
		IsActive:      true,
	})
	if err != nil {
		return err
	}

	s.logger.Info("default time window config created",
		zap.String("id", created.ID.String()))
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("invalidate time window cache failed", zap.Error(err))
	}
}

func validateWindows(req UpdateConfigRequest) error {
	pairs := [][2]string{
		{req.CheckInStart, req.CheckInEnd},
		{req.CheckOutStart, req.CheckOutEnd},
	}
	for _, p := range pairs {
		start, err := parseClock(p[0])
		if err != nil {
			return timewindowerrors.ErrInvalidClock
		}
		end, err := parseClock(p[1])
		if err != nil {
			return timewindowerrors.ErrInvalidClock
		}
		if start >= end {
			return timewindowerrors.ErrWindowOrder
		}
	}
	return nil
}
