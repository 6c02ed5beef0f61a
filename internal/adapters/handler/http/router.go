package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

type RouterDependencies struct {
	Mode   string
	Client domain.Client

	// Demo is nil in live mode; the /demo routes are then not mounted.
	Demo DemoLifecycle
	Jobs JobQueue

	// TokenService enables bearer auth on data routes when set.
	TokenService *services.TokenService

	Redis     *redis.Client
	RateLimit int

	Logger    *zap.Logger
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, time.Minute, log))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		statusCode := http.StatusOK
		body := gin.H{
			"status": "ok",
			"mode":   deps.Mode,
			"uptime": time.Since(deps.StartTime).String(),
		}

		if deps.Demo != nil {
			storage := "connected"
			if _, err := deps.Demo.Status(ctx); err != nil {
				storage = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
			body["storage"] = storage
		}

		if deps.Redis != nil {
			redisStatus := "connected"
			if err := cache.Ping(ctx, deps.Redis); err != nil {
				redisStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
			body["redis"] = redisStatus
		}

		c.JSON(statusCode, body)
	})

	apiV1 := router.Group("/api/v1")

	authHandler := NewAuthHandler(deps.Client, deps.TokenService, log)
	authHandler.RegisterRoutes(apiV1)

	if deps.Demo != nil {
		NewDemoHandler(deps.Demo, deps.Jobs, log).RegisterRoutes(apiV1)
	}

	protected := apiV1.Group("")
	if deps.TokenService != nil {
		protected.Use(middleware.AuthMiddleware(deps.TokenService))
	}
	{
		authHandler.RegisterProtectedRoutes(protected)
		NewDashboardHandler(deps.Client, log).RegisterRoutes(protected)
		NewMoodHandler(deps.Client, log).RegisterRoutes(protected)
		NewBurnoutHandler(deps.Client, log).RegisterRoutes(protected)
		NewInsightHandler(deps.Client, log).RegisterRoutes(protected)
		NewWearableHandler(deps.Client, log).RegisterRoutes(protected)
	}

	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
