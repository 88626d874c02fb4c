package attendance

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const historyKeyPrefix = "attendance:history:"

// HistoryKey adalah key cache riwayat presensi seorang siswa; dipakai juga
// oleh consumer invalidasi.
func HistoryKey(studentID uuid.UUID) string {
	return historyKeyPrefix + studentID.String()
}

// HistoryCacheInvalidator dipanggil setelah commit supaya tampilan riwayat
// tidak menyajikan data basi. Kegagalan invalidasi tidak menggagalkan
// submission yang sudah tercatat.
type HistoryCacheInvalidator interface {
	InvalidateHistory(ctx context.Context, studentID uuid.UUID)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateHistory(context.Context, uuid.UUID) {}

func NewNoopInvalidator() HistoryCacheInvalidator {
	return noopInvalidator{}
}

type redisInvalidator struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisInvalidator(rdb *redis.Client, logger ...*zap.Logger) HistoryCacheInvalidator {
	l := zap.L().Named("attendance.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &redisInvalidator{rdb: rdb, logger: l}
}

func (r *redisInvalidator) InvalidateHistory(ctx context.Context, studentID uuid.UUID) {
	if err := r.rdb.Del(ctx, HistoryKey(studentID)).Err(); err != nil {
		r.logger.Warn("invalidate history cache failed",
			zap.String("student_id", studentID.String()),
			zap.Error(err),
		)
	}
}
