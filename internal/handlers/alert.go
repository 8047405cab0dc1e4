// internal/handlers/alert.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

type AlertHandler struct {
	alerts    *services.AlertService
	dashboard *services.DashboardService
}

func NewAlertHandler(alerts *services.AlertService, dashboard *services.DashboardService) *AlertHandler {
	return &AlertHandler{
		alerts:    alerts,
		dashboard: dashboard,
	}
}

// GET /alerts
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.alerts.Active()
	if err != nil {
		respondError(c, "", err)
		return
	}

	policy := h.alerts.Policy()
	utils.SuccessResponseWithMeta(c, alerts, gin.H{
		"window_days":            policy.WindowDays,
		"expired_threshold_days": policy.ExpiredThresholdDays,
	})
}

// GET /dashboard
func (h *AlertHandler) GetDashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats()
	if err != nil {
		respondError(c, "", err)
		return
	}

	utils.SuccessResponse(c, stats)
}
