package location

import (
	"time"

	"github.com/google/uuid"
)

// Mode presensi per lokasi: apakah presensi pulang diizinkan.
const (
	ModeCheckInOnly   = "CHECK_IN_ONLY"
	ModeCheckInAndOut = "CHECK_IN_AND_OUT"
)

// Location adalah tempat PKL. PIN dipakai bersama oleh semua siswa yang
// dipetakan ke lokasi tersebut.
type Location struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"column:name;type:varchar(120);not null"`
	Address        string    `gorm:"column:address;type:text"`
	PIN            string    `gorm:"column:pin;type:varchar(20);not null;index"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	AttendanceMode string    `gorm:"column:attendance_mode;type:varchar(20);not null;default:CHECK_IN_AND_OUT"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Location) TableName() string {
	return "locations"
}

// AllowsType melaporkan apakah mode lokasi mengizinkan tipe presensi tersebut.
func (l *Location) AllowsType(recordType string) bool {
	if l.AttendanceMode == ModeCheckInOnly {
		return recordType != "CHECK_OUT"
	}
	return true
}
