package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the care episode pipeline.
type Metrics struct {
	AppointmentsCreated   prometheus.Counter
	ClaimsSubmitted       prometheus.Counter
	ClaimsApproved        prometheus.Counter
	DisbursementsRecorded prometheus.Counter
	RejectedOperations    *prometheus.CounterVec
	ClaimAmounts          prometheus.Histogram
}

// New registers and returns episode pipeline metrics collectors.
func New() *Metrics {
	return &Metrics{
		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_appointments_created_total",
			Help: "Total number of appointments created",
		}),
		ClaimsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_claims_submitted_total",
			Help: "Total number of claims submitted",
		}),
		ClaimsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_claims_approved_total",
			Help: "Total number of claims approved",
		}),
		DisbursementsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_disbursements_recorded_total",
			Help: "Total number of disbursements recorded",
		}),
		RejectedOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caresure_episode_rejections_total",
			Help: "Pipeline operations rejected by a precondition, by error code",
		}, []string{"operation", "code"}),
		ClaimAmounts: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caresure_claim_amounts",
			Help:    "Distribution of submitted claim amounts",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
	}
}

func (m *Metrics) IncrementAppointmentsCreated()   { m.AppointmentsCreated.Inc() }
func (m *Metrics) IncrementClaimsSubmitted()       { m.ClaimsSubmitted.Inc() }
func (m *Metrics) IncrementClaimsApproved()        { m.ClaimsApproved.Inc() }
func (m *Metrics) IncrementDisbursementsRecorded() { m.DisbursementsRecorded.Inc() }

func (m *Metrics) IncrementRejected(operation, code string) {
	m.RejectedOperations.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) ObserveClaimAmount(amount float64) {
	m.ClaimAmounts.Observe(amount)
}
