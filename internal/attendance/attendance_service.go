package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "pklapps/internal/attendance/errors"
	"pklapps/internal/events"
	"pklapps/internal/location"
	"pklapps/internal/messaging/kafka"
	"pklapps/internal/shared/apperror"
	"pklapps/internal/shared/contextutil"
	"pklapps/internal/shared/txn"
	"pklapps/internal/student"
	"pklapps/internal/timewindow"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock disuntikkan supaya keputusan "hari ini" bisa diuji tanpa menunggu
// tengah malam.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// WindowReader menyediakan konfigurasi jendela jam saat ini.
// Dipenuhi oleh timewindow.Service.
type WindowReader interface {
	Current(ctx context.Context) (*timewindow.Config, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, userID string, req SubmitRequest) (SubmitResponse, error)
	GetHistory(ctx context.Context, userID string) ([]HistoryItem, error)
}

type service struct {
	runner      txn.Runner
	students    student.Repository
	locations   location.Repository
	repo        Repository
	outbox      kafka.OutboxRepository
	windows     WindowReader
	invalidator HistoryCacheInvalidator
	clock       Clock
	tz          *time.Location
	logger      *zap.Logger
}

type ServiceOption func(*service)

func WithOutbox(outbox kafka.OutboxRepository) ServiceOption {
	return func(s *service) { s.outbox = outbox }
}

func WithWindowReader(windows WindowReader) ServiceOption {
	return func(s *service) { s.windows = windows }
}

func WithInvalidator(inv HistoryCacheInvalidator) ServiceOption {
	return func(s *service) { s.invalidator = inv }
}

func WithClock(clock Clock) ServiceOption {
	return func(s *service) { s.clock = clock }
}

func WithTimezone(tz *time.Location) ServiceOption {
	return func(s *service) { s.tz = tz }
}

func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *service) { s.logger = logger }
}

func NewService(
	runner txn.Runner,
	students student.Repository,
	locations location.Repository,
	repo Repository,
	opts ...ServiceOption,
) Service {
	s := &service{
		runner:      runner,
		students:    students,
		locations:   locations,
		repo:        repo,
		invalidator: NewNoopInvalidator(),
		clock:       systemClock{},
		tz:          time.UTC,
		logger:      zap.L().Named("attendance.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit menjalankan seluruh lookup dan tabel keputusan di dalam satu
// transaksi yang dikelola txn.Runner. Penolakan bisnis tidak pernah
// di-retry; hanya kegagalan store transient yang diulang, dan itu aman
// karena unique constraint membuat insert idempoten dari sisi caller.
func (s *service) Submit(ctx context.Context, userID string, req SubmitRequest) (SubmitResponse, error) {
	if req.PIN == "" {
		return SubmitResponse{}, apperror.RequiredField("Pin")
	}
	if !ValidType(req.Type) {
		return SubmitResponse{}, attendanceerrors.ErrInvalidType
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return SubmitResponse{}, apperror.ErrUnauthorized
	}

	log := contextutil.GetLogger(ctx, s.logger)

	// Jendela jam dibaca di luar transaksi: sifatnya anotasi atau gerbang
	// awal, bukan bagian dari invariant keunikan. Gagal baca = tanpa jendela.
	var cfg *timewindow.Config
	if s.windows != nil {
		cfg, err = s.windows.Current(ctx)
		if err != nil {
			log.Warn("load time window config failed, continuing without it", zap.Error(err))
			cfg = nil
		}
	}

	now := s.clock.Now().In(s.tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.tz)

	var created *AttendanceRecord
	var studentID uuid.UUID

	err = s.runner.Run(ctx, txn.Options{OperationName: "attendance.submit"}, func(tx *gorm.DB) error {
		loc, err := s.locations.WithTx(tx).FindActiveByPIN(ctx, req.PIN)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		st, err := s.students.WithTx(tx).FindByUserID(ctx, uid)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var todays []AttendanceRecord
		if st != nil {
			todays, err = s.repo.WithTx(tx).FindByStudentAndDate(ctx, st.ID, today)
			if err != nil {
				return err
			}
		}

		decision := Decide(loc, st, todays, req.Type, now)
		if !decision.Accepted {
			return RejectError(decision.Reject)
		}

		outside := cfg != nil && !cfg.Allows(decision.Type, now)
		if outside && cfg.Enforcement == timewindow.EnforcementBlock {
			return attendanceerrors.ErrOutsideTimeWindow
		}

		rec := &AttendanceRecord{
			ID:             uuid.New(),
			StudentID:      st.ID,
			AttendanceDate: today,
			Type:           decision.Type,
			RecordedAt:     decision.Timestamp.UTC(),
			OutsideWindow:  outside,
			Version:        1,
		}
		if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
			return mapRepositoryError(err)
		}

		if s.outbox != nil {
			if err := s.enqueueRecordedEvent(ctx, tx, rec, loc.ID); err != nil {
				return err
			}
		}

		created = rec
		studentID = st.ID
		return nil
	})
	if err != nil {
		return SubmitResponse{}, s.mapSubmitError(ctx, err)
	}

	// Invalidasi cache hanya setelah commit; mengulanginya aman.
	s.invalidator.InvalidateHistory(ctx, studentID)

	log.Info("attendance recorded",
		zap.String("record_id", created.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("type", created.Type),
		zap.Bool("outside_window", created.OutsideWindow),
	)

	return SubmitResponse{
		ID:             created.ID.String(),
		Type:           created.Type,
		AttendanceDate: created.AttendanceDate.Format("2006-01-02"),
		RecordedAt:     created.RecordedAt.Format(time.RFC3339),
		OutsideWindow:  created.OutsideWindow,
		Message:        successMessage(created.Type),
	}, nil
}

func (s *service) enqueueRecordedEvent(ctx context.Context, tx *gorm.DB, rec *AttendanceRecord, locationID uuid.UUID) error {
	payload, err := json.Marshal(events.AttendanceRecordedEvent{
		EventType:      "attendance.recorded",
		RecordID:       rec.ID.String(),
		StudentID:      rec.StudentID.String(),
		LocationID:     locationID.String(),
		Type:           rec.Type,
		AttendanceDate: rec.AttendanceDate.Format("2006-01-02"),
		RecordedAt:     rec.RecordedAt,
		OutsideWindow:  rec.OutsideWindow,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance_record",
		AggregateID:   rec.ID.String(),
		EventType:     "attendance.recorded",
		Topic:         events.AttendanceRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) mapSubmitError(ctx context.Context, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	log := contextutil.GetLogger(ctx, s.logger)

	var exhausted *txn.RetriesExhaustedError
	if errors.As(err, &exhausted) {
		return apperror.Wrap(err, apperror.CodeServiceUnavailable,
			apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}

	log.Error("attendance submit failed with unclassified error", zap.Error(err))
	return apperror.Wrap(err, apperror.CodeInternalError,
		apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
}

func (s *service) GetHistory(ctx context.Context, userID string) ([]HistoryItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	st, err := s.students.FindByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrStudentNotFound
		}
		return nil, err
	}

	rows, err := s.repo.FindAllByStudent(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, len(rows))
	for i, rec := range rows {
		items[i] = HistoryItem{
			ID:             rec.ID.String(),
			Type:           rec.Type,
			AttendanceDate: rec.AttendanceDate.Format("2006-01-02"),
			RecordedAt:     rec.RecordedAt.Format(time.RFC3339),
			OutsideWindow:  rec.OutsideWindow,
		}
	}
	return items, nil
}

func successMessage(recordType string) string {
	if recordType == TypeCheckOut {
		return "Presensi pulang berhasil dicatat"
	}
	return "Presensi masuk berhasil dicatat"
}
