package monitoring

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler reports overall status. Degraded upstreams do not fail the
// check because every upstream has a fallback; only repeated failures do.
func HealthHandler(m *Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		state := "ok"
		if !m.IsHealthy() {
			status = http.StatusServiceUnavailable
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":     state,
			"summary":    m.GetStatusSummary(),
			"components": m.Components(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// MetricsHandler exposes Prometheus metrics.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
