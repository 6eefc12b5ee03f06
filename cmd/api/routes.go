package main

import (
	"github.com/gin-gonic/gin"

	"voicebilling-platform/internal/analytics"
	"voicebilling-platform/internal/auth"
	"voicebilling-platform/internal/httpapi"
	"voicebilling-platform/internal/ingest"
	"voicebilling-platform/internal/observability"
	"voicebilling-platform/internal/rbac"
	"voicebilling-platform/internal/stream"
)

// routeDeps carries the fully constructed services into route registration.
// Keep this file free of business logic.
type routeDeps struct {
	authMW    gin.HandlerFunc
	handlers  httpapi.Handlers
	ingest    ingest.Handler
	analytics *analytics.HTTPHandler
	demo      *stream.Handler
}

func registerRoutes(r *gin.Engine, deps routeDeps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(observability.Handler()))

	// Session-report webhook (public).
	// NOTE: production deployments should front this with runtime-side
	// signing or a network boundary; payload identity is advisory.
	r.POST("/webhooks/session", deps.ingest.HandleSessionReport)

	// Local demo voice stream.
	r.GET("/ws/v1/demo", deps.demo.Demo)

	// AUTH routes (token issuance).
	// NOTE: placeholder login; real credential validation is not implemented.
	r.POST("/v1/auth/login", deps.handlers.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(deps.authMW)
	{
		v1.GET("/me", func(c *gin.Context) {
			uid, _ := auth.UserID(c.Request.Context())
			tid, _ := auth.TenantID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"user_id": uid, "tenant_id": tid, "role": role})
		})

		// METRICS routes (dashboard reads)
		metrics := v1.Group("/metrics")
		metrics.Use(httpapi.RequireTenantAndAnyRole(rbac.RoleOwner, rbac.RoleAnalyst, rbac.RoleSuperAdmin)...)
		{
			metrics.GET("/call-logs", deps.analytics.CallLogs)
			metrics.GET("/summary", deps.analytics.Summary)
			metrics.GET("/realtime", deps.analytics.Realtime)
		}

		// WALLET routes
		wallets := v1.Group("/wallets")
		wallets.Use(httpapi.RequireTenantAndAnyRole(rbac.RoleOwner, rbac.RoleFinance, rbac.RoleSuperAdmin)...)
		{
			wallets.GET("/:wallet_id", deps.handlers.GetWalletBalance)
			wallets.GET("/:wallet_id/transactions", deps.handlers.ListWalletTransactions)
		}

		// ADMIN routes
		// Only owner/super_admin by default; the hidden support_operator role
		// is intentionally NOT included.
		admin := v1.Group("/admin")
		admin.Use(httpapi.RequireTenantAndAnyRole(rbac.RoleOwner, rbac.RoleSuperAdmin)...)
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})
			admin.POST("/wallets/:wallet_id/credit", deps.handlers.AdminManualCredit)
		}
	}
}
