package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voicebilling-platform/internal/auth"
	"voicebilling-platform/pkg/logger"
)

// HTTPHandler exposes the dashboard read endpoints over gin.
type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// GET /v1/metrics/call-logs
func (h *HTTPHandler) CallLogs(c *gin.Context) {
	tenantID, err := auth.TenantID(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	q := CallQuery{
		AgentID: c.Query("agent_id"),
		Status:  c.Query("status"),
		Limit:   intQuery(c, "limit", 20),
		Offset:  intQuery(c, "offset", 0),
	}

	entries, err := h.svc.CallLogs(c.Request.Context(), tenantID, q)
	if err != nil {
		logger.FromGin(c).Error("call logs failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": entries, "count": len(entries)})
}

// GET /v1/metrics/summary
func (h *HTTPHandler) Summary(c *gin.Context) {
	tenantID, err := auth.TenantID(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	sum, err := h.svc.Summary(c.Request.Context(), tenantID, c.Query("agent_id"))
	if err != nil {
		logger.FromGin(c).Error("summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GET /v1/metrics/realtime
func (h *HTTPHandler) Realtime(c *gin.Context) {
	tenantID, err := auth.TenantID(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}

	live, err := h.svc.Realtime(c.Request.Context(), tenantID, c.Query("agent_id"))
	if err != nil {
		logger.FromGin(c).Error("realtime failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_calls": live, "count": len(live)})
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
