package attendanceerrors

import (
	"net/http"

	"pklapps/internal/shared/apperror"
)

// Kode di bawah dikonsumsi langsung oleh form presensi di aplikasi luar;
// jangan diubah tanpa koordinasi.
const (
	CodePinInvalid           = "PIN_INVALID"
	CodeStudentNotFound      = "STUDENT_NOT_FOUND"
	CodeStudentNotAtLocation = "STUDENT_NOT_AT_LOCATION"
	CodeTypeDisallowedByMode = "TYPE_DISALLOWED_BY_MODE"
	CodeDuplicateAttendance  = "DUPLICATE_ATTENDANCE"
	CodeMissingPriorCheckIn  = "MISSING_PRIOR_CHECK_IN"
	CodeOutsideTimeWindow    = "OUTSIDE_TIME_WINDOW"
)

var (
	ErrPinInvalid = apperror.New(
		CodePinInvalid,
		"PIN lokasi tidak valid atau lokasi sedang tidak aktif",
		http.StatusNotFound,
	)
	ErrStudentNotFound = apperror.New(
		CodeStudentNotFound,
		"Data siswa tidak ditemukan",
		http.StatusNotFound,
	)
	ErrStudentNotAtLocation = apperror.New(
		CodeStudentNotAtLocation,
		"Kamu tidak terdaftar di lokasi PKL ini",
		http.StatusForbidden,
	)
	ErrTypeDisallowedByMode = apperror.New(
		CodeTypeDisallowedByMode,
		"Presensi pulang tidak diizinkan di lokasi ini",
		http.StatusConflict,
	)
	ErrDuplicateAttendance = apperror.New(
		CodeDuplicateAttendance,
		"Presensi dengan tipe yang sama sudah tercatat hari ini",
		http.StatusConflict,
	)
	ErrMissingPriorCheckIn = apperror.New(
		CodeMissingPriorCheckIn,
		"Belum ada presensi masuk untuk hari ini",
		http.StatusConflict,
	)
	ErrOutsideTimeWindow = apperror.New(
		CodeOutsideTimeWindow,
		"Presensi di luar jam yang diizinkan",
		http.StatusConflict,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"Tipe presensi harus CHECK_IN atau CHECK_OUT",
		http.StatusBadRequest,
	)
)
