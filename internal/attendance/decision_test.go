package attendance

import (
	"testing"
	"time"

	"pklapps/internal/location"
	"pklapps/internal/student"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func fixtureLocation(mode string) *location.Location {
	return &location.Location{
		ID:             uuid.New(),
		Name:           "Bengkel Maju Jaya",
		PIN:            "482913",
		IsActive:       true,
		AttendanceMode: mode,
	}
}

func fixtureStudent(locationID uuid.UUID) *student.Student {
	return &student.Student{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		FullName:   "Budi Santoso",
		NIS:        "2024-0117",
		LocationID: &locationID,
	}
}

func TestDecide(t *testing.T) {
	now := time.Date(2026, 3, 9, 7, 15, 0, 0, time.UTC)

	loc := fixtureLocation(location.ModeCheckInAndOut)
	st := fixtureStudent(loc.ID)

	inOnly := fixtureLocation(location.ModeCheckInOnly)
	stInOnly := fixtureStudent(inOnly.ID)

	checkInToday := AttendanceRecord{
		ID:        uuid.New(),
		StudentID: st.ID,
		Type:      TypeCheckIn,
	}
	checkOutToday := AttendanceRecord{
		ID:        uuid.New(),
		StudentID: st.ID,
		Type:      TypeCheckOut,
	}

	tests := []struct {
		name          string
		loc           *location.Location
		st            *student.Student
		todays        []AttendanceRecord
		requestedType string
		wantAccepted  bool
		wantReject    RejectKind
	}{
		{
			name:          "check-in pertama diterima",
			loc:           loc,
			st:            st,
			requestedType: TypeCheckIn,
			wantAccepted:  true,
		},
		{
			name:          "check-out setelah check-in diterima",
			loc:           loc,
			st:            st,
			todays:        []AttendanceRecord{checkInToday},
			requestedType: TypeCheckOut,
			wantAccepted:  true,
		},
		{
			name:          "pin tidak dikenal",
			loc:           nil,
			st:            st,
			requestedType: TypeCheckIn,
			wantReject:    RejectPinInvalid,
		},
		{
			name: "lokasi nonaktif diperlakukan seperti pin salah",
			loc: &location.Location{
				ID:             loc.ID,
				PIN:            loc.PIN,
				IsActive:       false,
				AttendanceMode: location.ModeCheckInAndOut,
			},
			st:            st,
			requestedType: TypeCheckIn,
			wantReject:    RejectPinInvalid,
		},
		{
			name:          "user tanpa profil siswa",
			loc:           loc,
			st:            nil,
			requestedType: TypeCheckIn,
			wantReject:    RejectStudentNotFound,
		},
		{
			name:          "siswa terpetakan ke lokasi lain",
			loc:           loc,
			st:            fixtureStudent(uuid.New()),
			requestedType: TypeCheckIn,
			wantReject:    RejectStudentNotAtLocation,
		},
		{
			name:          "siswa belum dipetakan ke lokasi manapun",
			loc:           loc,
			st:            &student.Student{ID: st.ID, UserID: st.UserID},
			requestedType: TypeCheckIn,
			wantReject:    RejectStudentNotAtLocation,
		},
		{
			name:          "check-out di lokasi check-in-only",
			loc:           inOnly,
			st:            stInOnly,
			requestedType: TypeCheckOut,
			wantReject:    RejectTypeDisallowedByMode,
		},
		{
			name:          "check-in kedua di hari yang sama",
			loc:           loc,
			st:            st,
			todays:        []AttendanceRecord{checkInToday},
			requestedType: TypeCheckIn,
			wantReject:    RejectDuplicateAttendance,
		},
		{
			name:          "check-out kedua di hari yang sama",
			loc:           loc,
			st:            st,
			todays:        []AttendanceRecord{checkInToday, checkOutToday},
			requestedType: TypeCheckOut,
			wantReject:    RejectDuplicateAttendance,
		},
		{
			name:          "check-out tanpa check-in",
			loc:           loc,
			st:            st,
			requestedType: TypeCheckOut,
			wantReject:    RejectMissingPriorCheckIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.loc, tt.st, tt.todays, tt.requestedType, now)

			assert.Equal(t, tt.wantAccepted, d.Accepted)
			if tt.wantAccepted {
				assert.Equal(t, tt.requestedType, d.Type)
				assert.Equal(t, now, d.Timestamp)
			} else {
				assert.Equal(t, tt.wantReject, d.Reject)
			}
		})
	}
}

// Pemeriksaan identitas harus menang atas pemeriksaan duplikat: submission
// dengan PIN salah tidak boleh membocorkan bahwa siswa sudah presensi.
func TestDecideOrderingPinBeforeDuplicate(t *testing.T) {
	loc := fixtureLocation(location.ModeCheckInAndOut)
	st := fixtureStudent(loc.ID)
	todays := []AttendanceRecord{{StudentID: st.ID, Type: TypeCheckIn}}

	d := Decide(nil, st, todays, TypeCheckIn, time.Now())

	assert.False(t, d.Accepted)
	assert.Equal(t, RejectPinInvalid, d.Reject)
}

// Mode lokasi diperiksa sebelum urutan masuk/pulang.
func TestDecideOrderingModeBeforeMissingCheckIn(t *testing.T) {
	loc := fixtureLocation(location.ModeCheckInOnly)
	st := fixtureStudent(loc.ID)

	d := Decide(loc, st, nil, TypeCheckOut, time.Now())

	assert.False(t, d.Accepted)
	assert.Equal(t, RejectTypeDisallowedByMode, d.Reject)
}

func TestRejectError(t *testing.T) {
	assert.Equal(t, "PIN_INVALID", RejectError(RejectPinInvalid).Code)
	assert.Equal(t, "STUDENT_NOT_FOUND", RejectError(RejectStudentNotFound).Code)
	assert.Equal(t, "STUDENT_NOT_AT_LOCATION", RejectError(RejectStudentNotAtLocation).Code)
	assert.Equal(t, "TYPE_DISALLOWED_BY_MODE", RejectError(RejectTypeDisallowedByMode).Code)
	assert.Equal(t, "DUPLICATE_ATTENDANCE", RejectError(RejectDuplicateAttendance).Code)
	assert.Equal(t, "MISSING_PRIOR_CHECK_IN", RejectError(RejectMissingPriorCheckIn).Code)
}
