package student

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alur submission hanya membaca data siswa; pembuatan dan pemetaan lokasi
// dilakukan admin lewat aplikasi luar.
//
//go:generate mockgen -source=student_repo.go -destination=mock/student_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Student, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)
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

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Student, error) {
	var s Student
	err := r.db.WithContext(ctx).
		First(&s, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Student, error) {
	var s Student
	err := r.db.WithContext(ctx).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
