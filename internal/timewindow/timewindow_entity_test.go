package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeConfig() *Config {
	return &Config{
		CheckInStart:  "06:30",
		CheckInEnd:    "09:00",
		CheckOutStart: "15:00",
		CheckOutEnd:   "18:00",
		Enforcement:   EnforcementAnnotateOnly,
		IsActive:      true,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.UTC)
}

func TestConfigAllows(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		recordType string
		t          time.Time
		want       bool
	}{
		{name: "check-in di tengah jendela", cfg: activeConfig(), recordType: "CHECK_IN", t: at(7, 15), want: true},
		{name: "check-in tepat di batas awal", cfg: activeConfig(), recordType: "CHECK_IN", t: at(6, 30), want: true},
		{name: "check-in tepat di batas akhir", cfg: activeConfig(), recordType: "CHECK_IN", t: at(9, 0), want: true},
		{name: "check-in semenit sebelum jendela", cfg: activeConfig(), recordType: "CHECK_IN", t: at(6, 29), want: false},
		{name: "check-in semenit setelah jendela", cfg: activeConfig(), recordType: "CHECK_IN", t: at(9, 1), want: false},
		{name: "check-out di jendela sore", cfg: activeConfig(), recordType: "CHECK_OUT", t: at(16, 0), want: true},
		{name: "check-out di jendela pagi ditolak", cfg: activeConfig(), recordType: "CHECK_OUT", t: at(7, 0), want: false},
		{name: "config nil tidak pernah membatasi", cfg: nil, recordType: "CHECK_IN", t: at(3, 0), want: true},
		{
			name: "config nonaktif tidak pernah membatasi",
			cfg: &Config{
				CheckInStart: "06:30", CheckInEnd: "09:00",
				CheckOutStart: "15:00", CheckOutEnd: "18:00",
				IsActive: false,
			},
			recordType: "CHECK_IN", t: at(3, 0), want: true,
		},
		{
			name: "jam korup di store gagal-terbuka",
			cfg: &Config{
				CheckInStart: "banana", CheckInEnd: "09:00",
				CheckOutStart: "15:00", CheckOutEnd: "18:00",
				IsActive: true,
			},
			recordType: "CHECK_IN", t: at(3, 0), want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Allows(tt.recordType, tt.t))
		})
	}
}

func TestParseClock(t *testing.T) {
	m, err := parseClock("07:45")
	assert.NoError(t, err)
	assert.Equal(t, 7*60+45, m)

	_, err = parseClock("25:00")
	assert.Error(t, err)

	_, err = parseClock("")
	assert.Error(t, err)
}
