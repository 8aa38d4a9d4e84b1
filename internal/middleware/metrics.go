package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mankab_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MailSends counts notification email attempts by template and outcome.
	MailSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mankab_mail_sends_total",
		Help: "Total number of notification email attempts by template and outcome",
	}, []string{"template", "outcome"})

	// DocumentStoreOps counts document store operations by kind and outcome.
	DocumentStoreOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mankab_document_store_ops_total",
		Help: "Total number of document store operations by kind and outcome",
	}, []string{"operation", "outcome"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP middleware that records request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
