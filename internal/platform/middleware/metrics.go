package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sbarcore/handoff/internal/platform/metrics"
)

// Metrics records request counts and latencies by route template, and counts
// successful writes under /api/v1 per resource.
func Metrics(m *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.InFlightGauge.Inc()
			defer m.InFlightGauge.Dec()

			if err := next(c); err != nil {
				c.Error(err)
			}

			method := c.Request().Method
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			code := strconv.Itoa(status)

			m.RequestsTotal.WithLabelValues(method, route, code).Inc()
			m.RequestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())

			if status < 400 {
				if resource, op, ok := writeOperation(method, route); ok {
					m.RecordWrites.WithLabelValues(resource, op).Inc()
				}
			}
			return nil
		}
	}
}

// writeOperation maps a mutating request on an /api/v1 route template to a
// resource and operation name, e.g. POST /api/v1/patients/:id/discharge is
// ("patients", "discharge").
func writeOperation(method, route string) (resource, op string, ok bool) {
	switch method {
	case http.MethodPost:
		op = "create"
	case http.MethodPut, http.MethodPatch:
		op = "update"
	case http.MethodDelete:
		op = "delete"
	default:
		return "", "", false
	}

	rest, found := strings.CutPrefix(route, "/api/v1/")
	if !found || rest == "" {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	resource = parts[0]
	if last := parts[len(parts)-1]; len(parts) > 1 && !strings.HasPrefix(last, ":") {
		op = last
	}
	return resource, op, true
}
