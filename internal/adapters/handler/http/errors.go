package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

func handleError(c *gin.Context, log *zap.Logger, err error) {
	var apiErr *services.APIError

	switch {
	case errors.Is(err, domain.ErrUnsupported):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "not supported in demo mode",
			"message": err.Error(),
		})

	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidInsightType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})

	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})

	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", must be an integer"})
		return 0, false
	}
	return n, true
}

// queryRange reads start_date, end_date and limit.
func queryRange(c *gin.Context) (domain.DateRange, bool) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return domain.DateRange{}, false
	}
	r := domain.DateRange{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Limit:     limit,
	}
	if err := r.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.DateRange{}, false
	}
	return r, true
}
