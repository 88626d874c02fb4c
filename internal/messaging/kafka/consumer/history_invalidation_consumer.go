package consumer

import (
	"context"
	"encoding/json"

	"pklapps/internal/attendance"
	"pklapps/internal/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceRecorded menggugurkan cache riwayat siswa setiap ada
// event presensi baru, supaya proses lain (view/report) membaca data segar.
func ConsumeAttendanceRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_recorded")
	log.Info("attendance recorded consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance recorded consumer stopped")
				return
			}
			log.Error("fetch attendance recorded message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance_recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		studentID, err := uuid.Parse(event.StudentID)
		if err != nil {
			log.Error("invalid student id in event",
				zap.String("student_id", event.StudentID))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx, attendance.HistoryKey(studentID)).Err(); err != nil {
			log.Error("invalidate history cache failed",
				zap.String("student_id", event.StudentID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance recorded message failed", zap.Error(err))
			continue
		}

		log.Debug("history cache invalidated",
			zap.String("student_id", event.StudentID),
			zap.String("record_id", event.RecordID),
		)
	}
}
