package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"voicebilling-platform/internal/auth"
	"voicebilling-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

func routeWithIdentity(userID, tenantID, role string, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handlers := []gin.HandlerFunc{func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), userID, tenantID, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) { c.Status(200) })

	r := gin.New()
	r.GET("/x", handlers...)
	return r
}

func TestRequireTenantAndAnyRole_AllowsMatchingRole(t *testing.T) {
	r := routeWithIdentity("u", "t1", rbac.RoleFinance, RequireTenantAndAnyRole(rbac.RoleFinance)...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireTenantAndAnyRole_RejectsMissingTenant(t *testing.T) {
	r := routeWithIdentity("u", "", rbac.RoleOwner, RequireTenantAndAnyRole(rbac.RoleOwner)...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireTenantAndAnyRole_RejectsWrongRole(t *testing.T) {
	r := routeWithIdentity("u", "t1", rbac.RoleAnalyst, RequireTenantAndAnyRole(rbac.RoleOwner)...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != 403 {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
