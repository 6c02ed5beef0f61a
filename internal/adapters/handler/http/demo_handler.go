package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/workers"
)

// DemoLifecycle is the demo-only surface beyond domain.Client.
type DemoLifecycle interface {
	Initialize(ctx context.Context) error
	Reset(ctx context.Context) error
	Clear(ctx context.Context) error
	Status(ctx context.Context) (*services.DemoStatus, error)
}

type JobQueue interface {
	Enqueue(kind workers.JobKind) bool
}

type DemoHandler struct {
	demo DemoLifecycle
	jobs JobQueue
	log  *zap.Logger
}

// NewDemoHandler exposes dataset lifecycle endpoints. jobs is optional and
// enables asynchronous resets.
func NewDemoHandler(demo DemoLifecycle, jobs JobQueue, log *zap.Logger) *DemoHandler {
	return &DemoHandler{demo: demo, jobs: jobs, log: log}
}

func (h *DemoHandler) RegisterRoutes(router *gin.RouterGroup) {
	demo := router.Group("/demo")
	{
		demo.GET("/status", h.Status)
		demo.POST("/initialize", h.Initialize)
		demo.POST("/reset", h.Reset)
		demo.DELETE("", h.Clear)
	}
}

func (h *DemoHandler) Status(c *gin.Context) {
	status, err := h.demo.Status(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *DemoHandler) Initialize(c *gin.Context) {
	if err := h.demo.Initialize(c.Request.Context()); err != nil {
		handleError(c, h.log, err)
		return
	}
	h.Status(c)
}

func (h *DemoHandler) Reset(c *gin.Context) {
	if c.Query("async") == "true" && h.jobs != nil {
		if !h.jobs.Enqueue(workers.JobReset) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reset queue full, try again later"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "reset scheduled"})
		return
	}

	if err := h.demo.Reset(c.Request.Context()); err != nil {
		handleError(c, h.log, err)
		return
	}
	h.Status(c)
}

func (h *DemoHandler) Clear(c *gin.Context) {
	if err := h.demo.Clear(c.Request.Context()); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
