package attendance

import (
	"errors"
	"strings"

	attendanceerrors "pklapps/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueConstraintName = "uq_attendance_student_date_type"

// mapRepositoryError menerjemahkan pelanggaran unique constraint presensi
// menjadi DuplicateAttendance. Constraint di store adalah penentu tunggal
// saat dua submission balapan; yang kalah sampai di sini.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueConstraintName {
			return attendanceerrors.ErrDuplicateAttendance
		}
		return err
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueConstraintName) {
		return attendanceerrors.ErrDuplicateAttendance
	}

	return err
}
