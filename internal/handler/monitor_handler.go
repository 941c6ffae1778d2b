package handler

import (
	"net/http"

	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMonitor 主机资源快照（CPU 采样约 1 秒，低流量运维页面专用）
func GetMonitor(c *gin.Context) {
	snapshot, err := service.GetMonitorSnapshot()
	if err != nil {
		WriteServiceError(c, err, "采集系统信息失败")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
