package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) ([]AttendanceRecord, error)
	FindAllByStudent(ctx context.Context, studentID uuid.UUID) ([]AttendanceRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByStudent(ctx context.Context, studentID uuid.UUID) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("attendance_date DESC, recorded_at DESC").
		Find(&rows).Error
	return rows, err
}
