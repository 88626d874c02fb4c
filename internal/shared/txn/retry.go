package txn

import (
	"math/rand"
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 50 * time.Millisecond
	DefaultMaxDelay   = 2 * time.Second
)

// Policy memutuskan apakah sebuah attempt boleh diulang dan berapa lama jedanya.
// MaxAttempts adalah total percobaan (attempt pertama + retry).
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// ShouldRetry menentukan retry untuk attempt ke-n (1-indexed).
// Attempt terakhir tidak pernah di-retry, apapun kind-nya.
func (p Policy) ShouldRetry(kind Kind, attempt int) (bool, time.Duration) {
	if attempt >= p.MaxAttempts {
		return false, 0
	}
	if !kind.Retryable() {
		return false, 0
	}
	return true, p.Backoff(attempt)
}

// Backoff menghitung jeda eksponensial untuk attempt ke-n (1-indexed):
// min(maxDelay, baseDelay * 2^(attempt-1)), lalu diberi jitter ±20%
// agar klien yang gagal bersamaan tidak retry serempak.
func (p Policy) Backoff(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}

	if attempt < 1 {
		attempt = 1
	}
	shift := attempt - 1
	if shift > 16 {
		shift = 16
	}

	d := base * time.Duration(1<<uint(shift))
	if d > maxDelay || d <= 0 {
		d = maxDelay
	}
	return jitter(d)
}

func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	f := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(d) * f)
}
