package timewindow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kebijakan saat presensi terjadi di luar jendela jam:
// BLOCK menolak submission, ANNOTATE_ONLY hanya menandai barisnya.
const (
	EnforcementBlock        = "BLOCK"
	EnforcementAnnotateOnly = "ANNOTATE_ONLY"
)

// Config adalah satu-satunya shared state yang bisa berubah setelah dibuat.
// Semua penulisnya wajib lewat compare-and-swap dengan versi terakhir yang
// dibaca; lihat verlock.Store.
type Config struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CheckInStart  string    `gorm:"column:check_in_start;type:varchar(5);not null;default:'06:30'"`
	CheckInEnd    string    `gorm:"column:check_in_end;type:varchar(5);not null;default:'09:00'"`
	CheckOutStart string    `gorm:"column:check_out_start;type:varchar(5);not null;default:'15:00'"`
	CheckOutEnd   string    `gorm:"column:check_out_end;type:varchar(5);not null;default:'18:00'"`
	Enforcement   string    `gorm:"column:enforcement;type:varchar(20);not null;default:ANNOTATE_ONLY"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	Version       int64     `gorm:"column:version;not null;default:1"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Config) TableName() string {
	return "global_time_windows"
}

func (c *Config) PrimaryID() uuid.UUID     { return c.ID }
func (c *Config) EntityVersion() int64     { return c.Version }
func (c *Config) SetEntityVersion(v int64) { c.Version = v }

// Allows melaporkan apakah jam t berada dalam jendela untuk tipe presensi
// tersebut. Config nonaktif atau jam yang tidak bisa di-parse tidak pernah
// memblokir submission.
func (c *Config) Allows(recordType string, t time.Time) bool {
	if c == nil || !c.IsActive {
		return true
	}

	var startStr, endStr string
	if recordType == "CHECK_OUT" {
		startStr, endStr = c.CheckOutStart, c.CheckOutEnd
	} else {
		startStr, endStr = c.CheckInStart, c.CheckInEnd
	}

	start, err := parseClock(startStr)
	if err != nil {
		return true
	}
	end, err := parseClock(endStr)
	if err != nil {
		return true
	}

	minute := t.Hour()*60 + t.Minute()
	return minute >= start && minute <= end
}

// parseClock mengubah "HH:MM" menjadi menit sejak tengah malam.
func parseClock(s string) (int, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
