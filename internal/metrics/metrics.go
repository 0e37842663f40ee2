package metrics

import (
	"time"

	"crm-platform/internal/assignment"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	OpBulk    = "bulk"
	OpOnboard = "onboard"
	OpReclaim = "reclaim"
)

// Assignment holds the collectors for assignment passes.
// A nil *Assignment is valid and records nothing.
type Assignment struct {
	decisions        *prometheus.CounterVec
	passDuration     *prometheus.HistogramVec
	lockContention   *prometheus.CounterVec
	activityFailures prometheus.Counter
}

// NewAssignment registers the assignment collectors on reg.
func NewAssignment(reg prometheus.Registerer) *Assignment {
	f := promauto.With(reg)
	return &Assignment{
		decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_assignment_decisions_total",
				Help: "Lead assignment decisions by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		passDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crm_assignment_pass_duration_seconds",
				Help:    "Duration of an assignment pass including persistence",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		lockContention: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_assignment_lock_busy_total",
				Help: "Assignment passes rejected because the tenant lock was held",
			},
			[]string{"operation"},
		),
		activityFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_activity_record_failures_total",
				Help: "Activity events that could not be stored",
			},
		),
	}
}

func (m *Assignment) ObserveDecisions(op string, ds []assignment.Decision) {
	if m == nil {
		return
	}
	var assigned, unassigned float64
	for _, d := range ds {
		if d.Assigned() {
			assigned++
		} else {
			unassigned++
		}
	}
	m.decisions.WithLabelValues(op, "assigned").Add(assigned)
	m.decisions.WithLabelValues(op, "unassigned").Add(unassigned)
}

func (m *Assignment) ObservePass(op string, started time.Time) {
	if m == nil {
		return
	}
	m.passDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Assignment) LockBusy(op string) {
	if m == nil {
		return
	}
	m.lockContention.WithLabelValues(op).Inc()
}

func (m *Assignment) ActivityFailed() {
	if m == nil {
		return
	}
	m.activityFailures.Inc()
}
