package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	SchedulesGenerated *prometheus.CounterVec
	ScheduleFailures   *prometheus.CounterVec
	SchedulePeriods    prometheus.Histogram
}

var Business = BusinessMetrics{
	SchedulesGenerated: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_schedules_generated_total",
			Help: "Total number of repayment schedules generated.",
		},
		[]string{"frequency"},
	),
	ScheduleFailures: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_schedule_failures_total",
			Help: "Total number of schedule requests that failed, by reason.",
		},
		[]string{"reason"},
	),
	SchedulePeriods: promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loan_schedule_periods",
			Help:    "Number of installments per generated schedule.",
			Buckets: []float64{1, 4, 12, 24, 36, 60, 120, 240, 360, 600},
		},
	),
}

func RecordScheduleGenerated(frequency string, periods int) {
	Business.SchedulesGenerated.WithLabelValues(frequency).Inc()
	Business.SchedulePeriods.Observe(float64(periods))
}

func RecordScheduleFailure(reason string) {
	Business.ScheduleFailures.WithLabelValues(reason).Inc()
}
