package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadsEnrolled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_enrolled_total",
			Help: "Total number of campaign enrollments",
		},
		[]string{"campaign"},
	)

	outreachEmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_emails_sent_total",
			Help: "Total number of outreach emails sent",
		},
	)

	outreachEmailFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_email_failures_total",
			Help: "Total number of failed outreach email sends",
		},
	)

	tasksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_tasks_created_total",
			Help: "Total number of outreach tasks created",
		},
		[]string{"channel"},
	)

	dispatchCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_cycles_total",
			Help: "Total number of periodic dispatch cycles",
		},
	)

	leadsUnsubscribed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_unsubscribed_total",
			Help: "Total number of leads that opted out",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadEnrolled(campaign string) {
	leadsEnrolled.WithLabelValues(campaign).Inc()
}

func RecordEmailSent() {
	outreachEmailsSent.Inc()
}

func RecordEmailFailure() {
	outreachEmailFailures.Inc()
}

func RecordTaskCreated(channel string) {
	tasksCreated.WithLabelValues(channel).Inc()
}

func RecordDispatchCycle() {
	dispatchCycles.Inc()
}

func RecordUnsubscribe() {
	leadsUnsubscribed.Inc()
}
