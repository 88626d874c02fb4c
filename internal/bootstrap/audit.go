package bootstrap

import "context"

// AuditLog adalah catatan operasional level aplikasi (start/stop, worker),
// bukan audit presensi per siswa.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
