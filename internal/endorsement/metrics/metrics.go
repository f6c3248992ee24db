package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for endorsement operations.
type Metrics struct {
	EndorsementsRecorded prometheus.Counter
	DuplicatesRejected   prometheus.Counter
	HospitalsEndorsed    prometheus.Counter
	EndorsersPerHospital prometheus.Histogram
}

// New registers and returns endorsement metrics collectors.
func New() *Metrics {
	return &Metrics{
		EndorsementsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_endorsements_recorded_total",
			Help: "Total number of insurer endorsements recorded",
		}),
		DuplicatesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_endorsements_duplicate_total",
			Help: "Total number of duplicate endorsement attempts rejected",
		}),
		HospitalsEndorsed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caresure_hospitals_endorsed_total",
			Help: "Total number of hospitals promoted to endorsed status",
		}),
		EndorsersPerHospital: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caresure_endorsers_per_hospital",
			Help:    "Distribution of endorser-set sizes after each endorsement",
			Buckets: []float64{1, 2, 3, 5, 10, 25},
		}),
	}
}

func (m *Metrics) IncrementEndorsementsRecorded() { m.EndorsementsRecorded.Inc() }
func (m *Metrics) IncrementDuplicatesRejected()   { m.DuplicatesRejected.Inc() }
func (m *Metrics) IncrementHospitalsEndorsed()    { m.HospitalsEndorsed.Inc() }

func (m *Metrics) ObserveEndorsersPerHospital(count float64) {
	m.EndorsersPerHospital.Observe(count)
}
