package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	attendanceMarks    *prometheus.CounterVec
	resultComputations *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the academic
// record endpoints.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academic_requests_total",
			Help: "Total number of academic API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "academic_latency_seconds",
			Help:    "Latency distribution for academic API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academic_errors_total",
			Help: "Total number of error responses returned by academic endpoints.",
		}, []string{"method", "route", "status"})

		attendanceMarks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_marks_total",
			Help: "Attendance write outcomes, split by created versus updated.",
		}, []string{"outcome"})

		resultComputations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "semester_result_computations_total",
			Help: "Semester result computations, labelled by awarded grade.",
		}, []string{"grade"})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, attendanceMarks, resultComputations)
	})
}

// Requests exposes the counter for academic requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for academic requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for academic error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// AttendanceMarks exposes the created/updated attendance outcome counter.
// The HTTP response shape does not distinguish the two; this counter does.
func AttendanceMarks() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceMarks
}

// ResultComputations exposes the per-grade result computation counter.
func ResultComputations() *prometheus.CounterVec {
	RegisterMetrics()
	return resultComputations
}
