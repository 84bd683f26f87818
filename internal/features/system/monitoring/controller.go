package system_monitoring

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type MonitoringController struct {
	monitoringService *MonitoringService
}

func (c *MonitoringController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/status", c.GetSystemStatus)
}

// GetSystemStatus
// @Summary Report host and realtime hub statistics
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} system_monitoring.SystemStatus
// @Router /system/status [get]
func (c *MonitoringController) GetSystemStatus(ctx *gin.Context) {
	status, err := c.monitoringService.GetSystemStatus()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, status)
}
