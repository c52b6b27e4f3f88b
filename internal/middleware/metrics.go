package middleware

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP collectors.  Each instance owns its registry so
// tests can build as many as they like.
type Metrics struct {
    Registry *prometheus.Registry
    requests *prometheus.CounterVec
    duration *prometheus.HistogramVec
}

// NewMetrics registers the request counter and latency histogram together
// with the Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
    m := &Metrics{
        Registry: prometheus.NewRegistry(),
        requests: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: namespace,
            Name:      "http_requests_total",
            Help:      "HTTP requests by method, route and status code.",
        }, []string{"method", "route", "code"}),
        duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
            Namespace: namespace,
            Name:      "http_request_duration_seconds",
            Help:      "HTTP request latency by method and route.",
            Buckets:   prometheus.DefBuckets,
        }, []string{"method", "route"}),
    }
    m.Registry.MustRegister(
        m.requests,
        m.duration,
        collectors.NewGoCollector(),
        collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
    )
    return m
}

// Middleware records every request.  The route label is the matched
// pattern (e.g. /api/rooms/:id) to keep cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }
            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            method := c.Request().Method
            m.requests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
            m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
            return nil
        }
    }
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
    return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
