package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/usecase"
)

// Metrics owns the application's collectors and their registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	bookings      prometheus.Counter
	transitions   *prometheus.CounterVec
	assignments   prometheus.Counter
	loginFailures prometheus.Counter
	completed     prometheus.Counter
}

var (
	_ usecase.BookingMetrics = (*Metrics)(nil)
	_ usecase.AuthMetrics    = (*Metrics)(nil)
)

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taketravel",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taketravel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taketravel",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taketravel",
			Name:      "booking_status_transitions_total",
			Help:      "Booking status changes by source and target status.",
		}, []string{"from", "to"}),
		assignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taketravel",
			Name:      "guide_assignments_total",
			Help:      "Guides assigned to bookings.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taketravel",
			Name:      "login_failures_total",
			Help:      "Rejected login attempts.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "taketravel",
			Name:      "bookings_auto_completed_total",
			Help:      "Confirmed bookings completed by the reconciler.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.bookings, m.transitions,
		m.assignments, m.loginFailures, m.completed,
	)
	return m
}

func (m *Metrics) BookingCreated() { m.bookings.Inc() }

func (m *Metrics) StatusChanged(from, to entity.BookingStatus) {
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) GuideAssigned() { m.assignments.Inc() }

func (m *Metrics) LoginFailed() { m.loginFailures.Inc() }

// BookingsCompleted records a reconciler run.
func (m *Metrics) BookingsCompleted(n int64) { m.completed.Add(float64(n)) }

// Middleware records count and latency of every request by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
