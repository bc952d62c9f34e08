package handlers

import (
	"net/http"

	"cardoctor/utils"

	"github.com/gin-gonic/gin"
)

// HealthReporter is satisfied by *utils.HealthMonitor.
type HealthReporter interface {
	Status() utils.HealthStatus
}

// LivenessHandler handles GET /.
func LivenessHandler(c *gin.Context) {
	c.String(http.StatusOK, utils.LivenessMessage)
}

// NewHealthHandler reports the latest store health snapshot on GET /health.
func NewHealthHandler(reporter HealthReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := reporter.Status()
		code := http.StatusOK
		state := "ok"
		if !status.Mongo {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "mongo": status.Mongo, "checkedAt": status.CheckedAt})
	}
}
