package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type InsightHandler struct {
	client domain.Client
	log    *zap.Logger
}

func NewInsightHandler(client domain.Client, log *zap.Logger) *InsightHandler {
	return &InsightHandler{client: client, log: log}
}

type generateInsightRequest struct {
	Type string `json:"insight_type" binding:"required"`
	Days int    `json:"days"`
}

type feedbackRequest struct {
	IsHelpful *bool `json:"is_helpful" binding:"required"`
}

func (h *InsightHandler) RegisterRoutes(router *gin.RouterGroup) {
	insights := router.Group("/insights")
	{
		insights.GET("", h.List)
		insights.POST("/generate", h.Generate)
		insights.PATCH("/:id/feedback", h.Feedback)
		insights.DELETE("/:id", h.Delete)
	}
}

func (h *InsightHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 10)
	if !ok {
		return
	}

	insights, err := h.client.GetInsights(c.Request.Context(), limit)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

func (h *InsightHandler) Generate(c *gin.Context) {
	var req generateInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insight, err := h.client.GenerateInsight(c.Request.Context(), domain.GenerateInsightInput{
		Type: domain.InsightType(req.Type),
		Days: req.Days,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, insight)
}

func (h *InsightHandler) Feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insight, err := h.client.UpdateInsightFeedback(c.Request.Context(), c.Param("id"), *req.IsHelpful)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

func (h *InsightHandler) Delete(c *gin.Context) {
	msg, err := h.client.DeleteInsight(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
