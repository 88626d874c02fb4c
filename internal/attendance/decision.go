package attendance

import (
	"time"

	attendanceerrors "pklapps/internal/attendance/errors"
	"pklapps/internal/location"
	"pklapps/internal/shared/apperror"
	"pklapps/internal/student"
)

// RejectKind adalah alasan penolakan dari tabel keputusan submission.
type RejectKind int

const (
	RejectNone RejectKind = iota
	RejectPinInvalid
	RejectStudentNotFound
	RejectStudentNotAtLocation
	RejectTypeDisallowedByMode
	RejectDuplicateAttendance
	RejectMissingPriorCheckIn
)

// Decision adalah hasil tabel keputusan: terima (buat baris dengan tipe dan
// timestamp ini) atau tolak dengan alasan tertentu.
type Decision struct {
	Accepted  bool
	Type      string
	Timestamp time.Time
	Reject    RejectKind
}

func accept(recordType string, now time.Time) Decision {
	return Decision{Accepted: true, Type: recordType, Timestamp: now}
}

func reject(kind RejectKind) Decision {
	return Decision{Reject: kind}
}

// Decide mengevaluasi tabel keputusan secara berurutan; aturan pertama yang
// cocok yang menang. Pemeriksaan PIN dan identitas sengaja didahulukan dari
// pemeriksaan mode dan urutan masuk/pulang supaya submission yang tidak sah
// tidak membocorkan state presensi siapapun.
//
// Fungsi ini murni: tanpa I/O, tanpa side effect, sehingga retry transaksi
// tidak pernah mengubah keputusannya.
func Decide(
	loc *location.Location,
	st *student.Student,
	todays []AttendanceRecord,
	requestedType string,
	now time.Time,
) Decision {
	if loc == nil || !loc.IsActive {
		return reject(RejectPinInvalid)
	}
	if st == nil {
		return reject(RejectStudentNotFound)
	}
	if !st.AssignedTo(loc.ID) {
		return reject(RejectStudentNotAtLocation)
	}
	if requestedType == TypeCheckOut && !loc.AllowsType(TypeCheckOut) {
		return reject(RejectTypeDisallowedByMode)
	}

	hasCheckIn := false
	for _, rec := range todays {
		if rec.Type == requestedType {
			return reject(RejectDuplicateAttendance)
		}
		if rec.Type == TypeCheckIn {
			hasCheckIn = true
		}
	}

	if requestedType == TypeCheckOut && !hasCheckIn {
		return reject(RejectMissingPriorCheckIn)
	}

	return accept(requestedType, now)
}

// RejectError memetakan alasan penolakan ke error bisnis ber-kode yang
// dilihat pemanggil.
func RejectError(kind RejectKind) *apperror.AppError {
	switch kind {
	case RejectPinInvalid:
		return attendanceerrors.ErrPinInvalid
	case RejectStudentNotFound:
		return attendanceerrors.ErrStudentNotFound
	case RejectStudentNotAtLocation:
		return attendanceerrors.ErrStudentNotAtLocation
	case RejectTypeDisallowedByMode:
		return attendanceerrors.ErrTypeDisallowedByMode
	case RejectDuplicateAttendance:
		return attendanceerrors.ErrDuplicateAttendance
	case RejectMissingPriorCheckIn:
		return attendanceerrors.ErrMissingPriorCheckIn
	default:
		return apperror.ErrInternal
	}
}
