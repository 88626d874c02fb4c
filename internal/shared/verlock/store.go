package verlock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity diimplementasikan oleh tipe pointer dari entitas ber-versi.
type Entity interface {
	PrimaryID() uuid.UUID
	EntityVersion() int64
	SetEntityVersion(v int64)
}

// Strategy menentukan perilaku CompareAndSwap saat versi sudah bergeser.
type Strategy int

const (
	// FailFast mengembalikan ConflictError ke caller untuk retry manual.
	FailFast Strategy = iota
	// RetryWithLatest membaca ulang versi terbaru dan mencoba lagi,
	// dengan asumsi patch caller masih valid terhadap state yang lebih baru.
	RetryWithLatest
)

const casMaxAttempts = 3

// Store adalah helper compare-and-swap generik untuk entitas ber-versi.
// Semua penulis entitas semacam ini wajib lewat sini, bukan overwrite buta.
type Store[T Entity] struct {
	db    *gorm.DB
	newFn func() T
}

func NewStore[T Entity](db *gorm.DB, newFn func() T) *Store[T] {
	return &Store[T]{db: db, newFn: newFn}
}

// WithTx mengembalikan Store yang beroperasi di dalam transaksi tx.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx, newFn: s.newFn}
}

// CreateWithVersion menyisipkan entitas baru dengan version = 1.
func (s *Store[T]) CreateWithVersion(ctx context.Context, entity T) (T, error) {
	entity.SetEntityVersion(1)
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		var zero T
		return zero, err
	}
	return entity, nil
}

// Get membaca entitas berdasarkan id.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	entity := s.newFn()
	if err := s.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		var zero T
		return zero, err
	}
	return entity, nil
}

// UpdateWithVersion menerapkan patch secara kondisional:
// "set patch, version = expected+1 where id = ? and version = expected".
// Nol baris berarti versi sudah digeser penulis lain -> ConflictError,
// dilengkapi versi aktual bila masih bisa dibaca dengan murah.
func (s *Store[T]) UpdateWithVersion(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	patch map[string]any,
) (T, error) {
	var zero T

	values := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		values[k] = v
	}
	values["version"] = expectedVersion + 1

	res := s.db.WithContext(ctx).
		Model(s.newFn()).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(values)
	if res.Error != nil {
		return zero, res.Error
	}

	if res.RowsAffected == 0 {
		conflict := &ConflictError{EntityID: id, ExpectedVersion: expectedVersion}
		if current, err := s.Get(ctx, id); err == nil {
			v := current.EntityVersion()
			conflict.ActualVersion = &v
		}
		return zero, conflict
	}

	return s.Get(ctx, id)
}

// CompareAndSwap membaca entitas, memverifikasi versinya sama dengan
// expectedVersion, menghitung patch lewat mutate, lalu mendelegasikan ke
// UpdateWithVersion. Ini satu-satunya pintu masuk yang dipakai endpoint
// pembaruan konfigurasi.
func (s *Store[T]) CompareAndSwap(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	mutate func(current T) (map[string]any, error),
	strategy Strategy,
) (T, error) {
	var zero T

	attempts := 1
	if strategy == RetryWithLatest {
		attempts = casMaxAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		current, err := s.Get(ctx, id)
		if err != nil {
			return zero, err
		}

		if current.EntityVersion() != expectedVersion {
			if strategy == FailFast {
				actual := current.EntityVersion()
				return zero, &ConflictError{
					EntityID:        id,
					ExpectedVersion: expectedVersion,
					ActualVersion:   &actual,
				}
			}
			expectedVersion = current.EntityVersion()
		}

		patch, err := mutate(current)
		if err != nil {
			return zero, err
		}

		updated, err := s.UpdateWithVersion(ctx, id, expectedVersion, patch)
		if err == nil {
			return updated, nil
		}

		var conflict *ConflictError
		if errors.As(err, &conflict) && strategy == RetryWithLatest && attempt < attempts {
			if conflict.ActualVersion != nil {
				expectedVersion = *conflict.ActualVersion
			}
			continue
		}
		return zero, err
	}

	// hanya tercapai kalau RetryWithLatest terus kalah balapan
	return zero, &ConflictError{EntityID: id, ExpectedVersion: expectedVersion}
}
