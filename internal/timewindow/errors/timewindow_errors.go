package timewindowerrors

import (
	"net/http"

	"pklapps/internal/shared/apperror"
)

var (
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"Konfigurasi jam presensi tidak ditemukan",
		http.StatusNotFound,
	)
	ErrVersionConflict = apperror.New(
		apperror.CodeConcurrencyConflict,
		"Konfigurasi sudah diubah oleh pengguna lain. Muat ulang lalu coba lagi",
		http.StatusConflict,
	)
	ErrInvalidClock = apperror.New(
		apperror.CodeInvalidInput,
		"Format jam tidak valid, gunakan HH:MM",
		http.StatusBadRequest,
	)
	ErrWindowOrder = apperror.New(
		apperror.CodeInvalidInput,
		"Jam mulai harus sebelum jam selesai",
		http.StatusBadRequest,
	)
)
