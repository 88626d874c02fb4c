package location

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveByPIN(ctx context.Context, pin string) (*Location, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
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

// FindActiveByPIN me-resolve PIN ke lokasi yang aktif. Lokasi nonaktif
// diperlakukan sama dengan PIN yang tidak dikenal.
func (r *repository) FindActiveByPIN(ctx context.Context, pin string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).
		Where("pin = ?", pin).
		Where("is_active = ?", true).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}
