package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type DashboardHandler struct {
	client domain.Client
	log    *zap.Logger
}

func NewDashboardHandler(client domain.Client, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{client: client, log: log}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Dashboard)
	router.GET("/health-metrics", h.HealthMetrics)
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dash, err := h.client.GetDashboard(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *DashboardHandler) HealthMetrics(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}

	metrics, err := h.client.GetHealthMetrics(c.Request.Context(), r)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
