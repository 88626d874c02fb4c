package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCheckIn  = "CHECK_IN"
	TypeCheckOut = "CHECK_OUT"
)

// ValidType melaporkan apakah t adalah tipe presensi yang dikenal.
func ValidType(t string) bool {
	return t == TypeCheckIn || t == TypeCheckOut
}

// AttendanceRecord tidak pernah diubah setelah insert; penghapusan hanya
// dilakukan admin di luar alur ini. Unique index per
// (student_id, attendance_date, type) adalah satu-satunya penentu siapa
// yang menang saat dua submission balapan.
type AttendanceRecord struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StudentID      uuid.UUID `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_date_type"`
	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_student_date_type"`
	Type           string    `gorm:"column:type;type:varchar(10);not null;uniqueIndex:uq_attendance_student_date_type"`
	RecordedAt     time.Time `gorm:"column:recorded_at;type:timestamptz;not null"`
	// OutsideWindow menandai presensi di luar jam yang dikonfigurasi;
	// hanya anotasi untuk tampilan riwayat.
	OutsideWindow bool      `gorm:"column:outside_window;not null;default:false"`
	Version       int64     `gorm:"column:version;not null;default:1"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
