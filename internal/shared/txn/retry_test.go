package txn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_ShouldRetry(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: 10 * time.Millisecond, MaxDelay: time.Second}

	tests := []struct {
		name    string
		kind    Kind
		attempt int
		want    bool
	}{
		{"serialization attempt 1", KindSerialization, 1, true},
		{"deadlock attempt 2", KindDeadlock, 2, true},
		{"connection attempt 1", KindConnection, 1, true},
		{"statement timeout attempt 1", KindStatementTimeout, 1, true},
		{"store busy attempt 1", KindStoreBusy, 1, true},
		{"business never", KindBusiness, 1, false},
		{"unique violation never", KindUniqueViolation, 1, false},
		{"not found never", KindNotFound, 1, false},
		{"concurrency conflict never", KindConcurrencyConflict, 1, false},
		{"unknown never", KindUnknown, 1, false},
		{"last attempt never retried", KindSerialization, 3, false},
		{"beyond last attempt", KindSerialization, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, delay := p.ShouldRetry(tt.kind, tt.attempt)
			assert.Equal(t, tt.want, got)
			if !got {
				assert.Zero(t, delay)
			} else {
				assert.Greater(t, delay, time.Duration(0))
			}
		})
	}
}

func TestPolicy_Backoff(t *testing.T) {
	p := Policy{MaxAttempts: 10, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	// jitter ±20%, jadi cek rentangnya saja
	within := func(t *testing.T, d, expected time.Duration) {
		t.Helper()
		low := time.Duration(float64(expected) * 0.8)
		high := time.Duration(float64(expected) * 1.2)
		assert.GreaterOrEqual(t, d, low)
		assert.LessOrEqual(t, d, high)
	}

	within(t, p.Backoff(1), 100*time.Millisecond)
	within(t, p.Backoff(2), 200*time.Millisecond)
	within(t, p.Backoff(3), 400*time.Millisecond)

	// attempt besar harus mentok di MaxDelay
	within(t, p.Backoff(8), time.Second)
	within(t, p.Backoff(50), time.Second)
}

func TestPolicy_BackoffDefaults(t *testing.T) {
	var p Policy
	d := p.Backoff(1)
	assert.Greater(t, d, time.Duration(0))
	assert.LessOrEqual(t, d, time.Duration(float64(DefaultBaseDelay)*1.2))
}
