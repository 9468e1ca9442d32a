package summary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	httperr "github.com/tapstand/pours/internal/core/errors"
	"github.com/tapstand/pours/internal/observability/metrics"
	"github.com/tapstand/pours/internal/validation"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the summary query routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/taps/:device_id/summary", s.SummaryHandler)
}

// SummaryHandler handles GET /v1/taps/:device_id/summary?from=&to=
// Window bounds are RFC3339 timestamps with explicit offsets. The
// inverted-range check happens here, before the engine is invoked.
func (s *Service) SummaryHandler(c *gin.Context) {
	var uri struct {
		DeviceID string `uri:"device_id" binding:"required"`
	}
	var query struct {
		From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	}

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpValidationError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpValidationError,
			Message:   "Invalid query parameters: from and to must be RFC3339 timestamps",
			Details:   err.Error(),
		})
		return
	}

	if query.To.Before(query.From) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{
			{Field: "to", Error: "to must be greater than or equal to from."},
		}})
		return
	}

	start := time.Now()
	result, err := s.Summarize(c.Request.Context(), uri.DeviceID, query.From, query.To)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("Summary query cancelled", "device_id", uri.DeviceID, "error", err)
			c.Abort()
			return
		}
		slog.Error("Failed to compute device summary", "error", err, "device_id", uri.DeviceID)
		metrics.ObserveSummary(metrics.ResultError, time.Since(start))
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStorageUnavailableError,
			Message:   "Failed to compute device summary",
		})
		return
	}

	metrics.ObserveSummary(metrics.ResultSuccess, time.Since(start))
	c.JSON(http.StatusOK, result)
}
