package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TokensIssued counts JWTs handed out on successful logins.
var TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "devlink_tokens_issued_total",
	Help: "Number of JWTs issued by the login endpoint.",
})

// InitMetrics creates the Prometheus middleware for the given service name.
// The returned instance must be registered on the app with RegisterAt before
// MetricsMiddleware is mounted.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the Prometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
