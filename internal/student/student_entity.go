package student

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_student_user"`
	FullName string    `gorm:"column:full_name;type:varchar(120);not null"`
	NIS      string    `gorm:"column:nis;type:varchar(30);not null"`
	// LocationID nullable sampai siswa dipetakan ke lokasi PKL oleh admin
	LocationID *uuid.UUID `gorm:"column:location_id;type:uuid;index"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// AssignedTo melaporkan apakah siswa terpetakan ke lokasi tersebut.
func (s *Student) AssignedTo(locationID uuid.UUID) bool {
	return s.LocationID != nil && *s.LocationID == locationID
}
