package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type WearableHandler struct {
	client domain.Client
	log    *zap.Logger
}

func NewWearableHandler(client domain.Client, log *zap.Logger) *WearableHandler {
	return &WearableHandler{client: client, log: log}
}

func (h *WearableHandler) RegisterRoutes(router *gin.RouterGroup) {
	wearables := router.Group("/wearables")
	{
		wearables.GET("/connection", h.Connection)
		wearables.POST("/connect/:provider", h.Connect)
		wearables.POST("/sync", h.Sync)
	}
}

func (h *WearableHandler) Connection(c *gin.Context) {
	conn, err := h.client.GetWearableConnection(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *WearableHandler) Connect(c *gin.Context) {
	authURL, err := h.client.ConnectWearable(c.Request.Context(), c.Param("provider"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authorization_url": authURL})
}

func (h *WearableHandler) Sync(c *gin.Context) {
	res, err := h.client.SyncWearable(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
