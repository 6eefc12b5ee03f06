package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"voicebilling-platform/internal/audit"
	"voicebilling-platform/internal/auth"
	"voicebilling-platform/internal/billing"
	"voicebilling-platform/internal/rbac"
	"voicebilling-platform/internal/wallet"
	"voicebilling-platform/pkg/logger"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth   *auth.Manager
	Wallet *wallet.Service
	Audit  *audit.Service
}

// --- Auth ---

type loginRequest struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.TenantID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, tenant_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.TenantID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Wallet ---

// GetWalletBalance handles GET /v1/wallets/:wallet_id.
func (h Handlers) GetWalletBalance(c *gin.Context) {
	if h.Wallet == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "wallet not configured"})
		return
	}
	tenantID, err := auth.TenantID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}
	walletID := c.Param("wallet_id")
	if walletID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "wallet_id required"})
		return
	}
	w, err := h.Wallet.GetWallet(c.Request.Context(), tenantID, walletID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
			return
		}
		logger.FromGin(c).Error("wallet lookup failed", "error", err, "wallet_id", walletID)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet_id":     w.WalletID,
		"balance_minor": w.BalanceMinor,
		"balance_euros": billing.EurosFromMinor(w.BalanceMinor),
		"currency":      w.Currency,
	})
}

// ListWalletTransactions handles GET /v1/wallets/:wallet_id/transactions.
func (h Handlers) ListWalletTransactions(c *gin.Context) {
	if h.Wallet == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "wallet not configured"})
		return
	}
	tenantID, err := auth.TenantID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}
	walletID := c.Param("wallet_id")
	txns, err := h.Wallet.ListTransactions(c.Request.Context(), tenantID, walletID, intQuery(c, "limit", 50))
	if err != nil {
		logger.FromGin(c).Error("transaction list failed", "error", err, "wallet_id", walletID)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns, "count": len(txns)})
}

type adminCreditRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Reason      string `json:"reason"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// AdminManualCredit performs an admin-only wallet top-up.
// RBAC: owner or super_admin.
func (h Handlers) AdminManualCredit(c *gin.Context) {
	if h.Wallet == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "wallet not configured"})
		return
	}
	tenantID, err := auth.TenantID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "tenant not resolved"})
		return
	}
	actorID, _ := auth.UserID(c.Request.Context())
	actorRole, _ := auth.Role(c.Request.Context())

	walletID := c.Param("wallet_id")
	var req adminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.AmountMinor <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "amount_minor must be positive"})
		return
	}

	entry, w, err := h.Wallet.Credit(c.Request.Context(), tenantID, walletID, wallet.CreditRequest{
		AmountMinor: req.AmountMinor,
		Description: req.Reason,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		case errors.Is(err, wallet.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid credit request"})
		default:
			logger.FromGin(c).Error("manual credit failed", "error", err, "wallet_id", walletID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	if h.Audit != nil {
		if err := h.Audit.LogAdminAction(c.Request.Context(), tenantID, actorID, actorRole, walletID, "manual credit: "+req.Reason); err != nil {
			logger.FromGin(c).Warn("audit write failed", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction_id": entry.ID,
		"balance_minor":  w.BalanceMinor,
		"balance_euros":  billing.EurosFromMinor(w.BalanceMinor),
	})
}

// RequireTenantAndAnyRole bundles the usual protected-route middleware.
func RequireTenantAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireTenant(), rbac.RequireAnyRole(roles...)}
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
