package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type MoodHandler struct {
	client domain.Client
	log    *zap.Logger
}

func NewMoodHandler(client domain.Client, log *zap.Logger) *MoodHandler {
	return &MoodHandler{client: client, log: log}
}

type createMoodRequest struct {
	Date   string  `json:"date" binding:"required"`
	Rating int     `json:"rating" binding:"required"`
	Notes  *string `json:"notes"`
}

type updateMoodRequest struct {
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

func (h *MoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	moods := router.Group("/mood-ratings")
	{
		moods.GET("", h.List)
		moods.POST("", h.Create)
		moods.GET("/stats", h.Stats)
		moods.PUT("/:date", h.Update)
		moods.DELETE("/:date", h.Delete)
	}
}

func (h *MoodHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}

	moods, err := h.client.GetMoodRatings(c.Request.Context(), r)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, moods)
}

func (h *MoodHandler) Create(c *gin.Context) {
	var req createMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mood, err := h.client.CreateMoodRating(c.Request.Context(), domain.CreateMoodInput{
		Date:   req.Date,
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, mood)
}

func (h *MoodHandler) Update(c *gin.Context) {
	var req updateMoodRequest
	// Both fields are optional, so an empty body is an empty patch.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mood, err := h.client.UpdateMoodRating(c.Request.Context(), c.Param("date"), domain.UpdateMoodInput{
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mood)
}

func (h *MoodHandler) Delete(c *gin.Context) {
	if err := h.client.DeleteMoodRating(c.Request.Context(), c.Param("date")); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MoodHandler) Stats(c *gin.Context) {
	days, ok := queryInt(c, "days", 30)
	if !ok {
		return
	}

	stats, err := h.client.GetMoodStats(c.Request.Context(), days)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
