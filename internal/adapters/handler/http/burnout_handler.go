package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type BurnoutHandler struct {
	client domain.Client
	log    *zap.Logger
}

func NewBurnoutHandler(client domain.Client, log *zap.Logger) *BurnoutHandler {
	return &BurnoutHandler{client: client, log: log}
}

func (h *BurnoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	burnout := router.Group("/burnout")
	{
		burnout.POST("/calculate", h.Calculate)
		burnout.GET("/history", h.History)
	}
}

func (h *BurnoutHandler) Calculate(c *gin.Context) {
	days, ok := queryInt(c, "days", 7)
	if !ok {
		return
	}

	score, err := h.client.CalculateBurnoutRisk(c.Request.Context(), days)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *BurnoutHandler) History(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}

	history, err := h.client.GetBurnoutHistory(c.Request.Context(), r)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
