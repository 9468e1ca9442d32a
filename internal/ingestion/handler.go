package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	v1 "github.com/tapstand/pours/internal/api/v1"
	httperr "github.com/tapstand/pours/internal/core/errors"
	"github.com/tapstand/pours/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidJSON   = "Invalid JSON body"
	msgPersistFailed = "Failed to persist pour event"
)

// RecordPourHandler handles HTTP POST /v1/pours.
// Created pours answer 201, replayed duplicates answer 200: retrying a
// submission is a normal client behavior, not a fault.
func (s *Service) RecordPourHandler(c *gin.Context) {
	var req v1.RecordPourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body received", "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgInvalidJSON,
		})
		return
	}

	if fieldErrs := s.rules.ValidatePour(&req); len(fieldErrs) > 0 {
		slog.Warn("Pour validation failed",
			"event_id", req.EventID,
			"device_id", req.DeviceID,
			"field_errors", len(fieldErrs))
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	evt := &v1.PourEvent{
		EventID:    req.EventID,
		DeviceID:   req.DeviceID,
		LocationID: req.LocationID,
		ProductID:  req.ProductID,
		StartedAt:  req.StartedAt,
		EndedAt:    req.EndedAt,
		VolumeMl:   req.VolumeMl,
	}

	created, err := s.store.TryInsert(c.Request.Context(), evt)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client is gone; nothing useful to write back.
			slog.Warn("Pour ingestion cancelled", "event_id", req.EventID, "error", err)
			c.Abort()
			return
		}
		slog.Error("Failed to persist pour event", "error", err, "event_id", req.EventID)
		metrics.IncPourIngested(metrics.OutcomeError)
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStorageUnavailableError,
			Message:   msgPersistFailed,
		})
		return
	}

	if !created {
		slog.Info("Duplicate pour replayed",
			"event_id", evt.EventID,
			"device_id", evt.DeviceID)
		metrics.IncPourIngested(metrics.OutcomeDuplicate)
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	slog.Info("Recorded pour",
		"event_id", evt.EventID,
		"device_id", evt.DeviceID,
		"product_id", evt.ProductID,
		"location_id", evt.LocationID,
		"volume_ml", evt.VolumeMl)
	metrics.IncPourIngested(metrics.OutcomeCreated)
	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}
