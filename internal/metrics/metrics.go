package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "code"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "handler_errors_total", Help: "Handler errors (5xx)",
	})
	Recorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "records_total", Help: "Attendance records created",
	})
	SessionsIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "sessions_issued_total", Help: "Attendance sessions opened",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendance", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, Recorded, SessionsIssued, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveRequest(method string, code int) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	if code >= 500 {
		HandlerErrors.Inc()
	}
}
