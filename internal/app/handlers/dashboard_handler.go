package handlers

import (
	"net/http"

	"aurum/karat_gold_loan/internal/app/middleware"
	"aurum/karat_gold_loan/internal/pkg/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardStats serves the aggregate view, scoped to the caller's role.
func (h *DashboardHandler) DashboardStats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.dashboardService.DashboardStats(c.Request.Context(), user.Role, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardService.CacheStats(c.Request.Context()))
}

func (h *DashboardHandler) FlushCache(c *gin.Context) {
	if err := h.dashboardService.FlushCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dashboard cache flushed"})
}
