package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/miteshrvasoya/autofix-workshop/internal/application/service"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard summary requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary returns aggregate counts and revenue for the home screen
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved", summary)
}
