package ingest

import (
	"errors"
	"net/http"

	"voicebilling-platform/internal/billing"
	"voicebilling-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handler converts the session-report webhook to internal types and delegates
// to the orchestrator. No business logic here.
//
// Auth note: reports are assumed pre-validated upstream (runtime-side
// signing / network boundary); identity embedded in the payload is treated as
// enrichment only.
type Handler struct {
	Service *Service
}

// HandleSessionReport ingests one end-of-call report.
//
// POST /webhooks/session
func (h Handler) HandleSessionReport(c *gin.Context) {
	log := logger.FromGin(c)

	if h.Service == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "ingestion not configured"})
		return
	}

	var report SessionReport
	if err := c.ShouldBindJSON(&report); err != nil {
		log.Warn("session report parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx := logger.With(c.Request.Context(), log)
	res, err := h.Service.Ingest(ctx, report)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidReport):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		case errors.Is(err, ErrAgentNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":      "agent not found",
				"session_id": report.SessionID,
			})
		default:
			// Retryable: idempotency makes re-delivery of the same
			// session id safe.
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "error persisting session report"})
		}
		return
	}

	switch res.Status {
	case StatusDuplicate:
		c.JSON(http.StatusOK, gin.H{
			"status":     StatusDuplicate,
			"session_id": res.SessionID,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":     StatusIngested,
			"session_id": res.SessionID,
			"agent_id":   res.AgentID,
			"cost_euros": billing.EurosFromMinor(res.CostMinor),
		})
	}
}
