package timewindow

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timewindow_repo.go -destination=mock/timewindow_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetCurrent(ctx context.Context) (*Config, error)
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

// GetCurrent mengambil baris konfigurasi tunggal. Baris tertua yang dianggap
// berlaku kalau karena satu dan lain hal ada lebih dari satu.
func (r *repository) GetCurrent(ctx context.Context) (*Config, error) {
	var c Config
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
