package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands observed by the client hook.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibehub_redis_errors_total",
		Help: "Redis command errors",
	}, []string{"command"})

	// RateLimitRejections counts requests rejected by the Redis rate limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibehub_ratelimit_rejections_total",
		Help: "Requests rejected by rate limiting",
	}, []string{"resource"})
)

// Metrics registers fiberprometheus HTTP metrics on the app and exposes them
// at /metrics.
func Metrics(app *fiber.App) {
	prom := fiberprometheus.New("vibehub")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
}
