// Package telemetry exposes Prometheus metrics for the clinical operations
// service: HTTP request throughput and latency, agent workflow outcomes, and
// audit classification counts.
package telemetry

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "edops",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "edops",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	agentRuns = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "edops",
		Subsystem: "agent",
		Name:      "runs_total",
		Help:      "Agent workflow executions by workflow name and status.",
	}, []string{"workflow", "status"})

	auditClassifications = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "edops",
		Subsystem: "audit",
		Name:      "classifications_total",
		Help:      "Human audit classifications by family and outcome.",
	}, []string{"family", "classification"})

	chatSecurityFindings = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "edops",
		Subsystem: "assistant",
		Name:      "security_findings_total",
		Help:      "Chat security findings by code and severity.",
	}, []string{"code", "severity"})
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// ObserveAgentRun counts one persisted workflow execution.
func ObserveAgentRun(workflow, status string) {
	agentRuns.WithLabelValues(workflow, status).Inc()
}

// ObserveAuditClassification counts one audit outcome, e.g. family="triage",
// classification="under_triage".
func ObserveAuditClassification(family, classification string) {
	auditClassifications.WithLabelValues(family, classification).Inc()
}

// ObserveSecurityFinding counts one chat security finding.
func ObserveSecurityFinding(code, severity string) {
	chatSecurityFindings.WithLabelValues(code, severity).Inc()
}

// Handler serves the Prometheus exposition endpoint.
func Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// Middleware records request counts and latency per route. The route label is
// the echo route pattern, not the raw path, to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
