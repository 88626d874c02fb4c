package verlock

import (
	"fmt"

	"github.com/google/uuid"
)

// ConflictError dikembalikan ketika update bersyarat tidak mengenai baris
// apapun karena versinya sudah digeser penulis lain. Patch yang basi tidak
// pernah diterapkan secara diam-diam.
type ConflictError struct {
	EntityID        uuid.UUID
	ExpectedVersion int64
	ActualVersion   *int64 // nil kalau tidak sempat terbaca
}

func (e *ConflictError) Error() string {
	if e.ActualVersion != nil {
		return fmt.Sprintf(
			"version conflict on %s: expected %d, actual %d",
			e.EntityID, e.ExpectedVersion, *e.ActualVersion,
		)
	}
	return fmt.Sprintf(
		"version conflict on %s: expected %d",
		e.EntityID, e.ExpectedVersion,
	)
}

// IsConcurrencyConflict dipakai txn.Classify agar error ini
// tidak pernah di-retry oleh transaction runner.
func (e *ConflictError) IsConcurrencyConflict() bool { return true }
