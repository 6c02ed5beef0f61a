package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

type AuthHandler struct {
	client domain.Client
	tokens *services.TokenService
	log    *zap.Logger
}

// NewAuthHandler wires registration and profile routes. tokens may be nil,
// in which case no demo sessions are issued.
func NewAuthHandler(client domain.Client, tokens *services.TokenService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{client: client, tokens: tokens, log: log}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type sessionResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	User        *domain.UserProfile `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		if h.tokens != nil {
			authGroup.POST("/demo-session", h.DemoSession)
		}
	}
}

// RegisterProtectedRoutes adds the routes that need an authenticated caller.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.client.Register(c.Request.Context(), domain.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *AuthHandler) DemoSession(c *gin.Context) {
	token, profile, err := h.tokens.IssueSession(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        profile,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.client.GetProfile(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
