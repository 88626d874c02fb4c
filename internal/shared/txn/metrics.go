package txn

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder menerima hasil tiap pemanggilan Run untuk observability.
// Implementasi tidak boleh mempengaruhi keputusan retry.
type Recorder interface {
	Record(operation string, attempts int, duration time.Duration, err error)
}

type NopRecorder struct{}

func (NopRecorder) Record(string, int, time.Duration, error) {}

type PrometheusRecorder struct {
	runs     *prometheus.CounterVec
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "txn_runs_total",
			Help: "Transactional unit-of-work executions by outcome.",
		}, []string{"operation", "outcome"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "txn_attempts_total",
			Help: "Individual transaction attempts, including retries.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "txn_duration_seconds",
			Help:    "Wall time of a unit of work including retries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(r.runs, r.attempts, r.duration)
	return r
}

func (r *PrometheusRecorder) Record(operation string, attempts int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = Classify(err).String()
	}
	r.runs.WithLabelValues(operation, outcome).Inc()
	r.attempts.WithLabelValues(operation).Add(float64(attempts))
	r.duration.WithLabelValues(operation).Observe(duration.Seconds())
}
