package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func serveWithIdentity(tenantID, role string, allowed ...string) int {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", tenantID, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, RequireTenant(), RequireAnyRole(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRequireAnyRole_AllowsListedRole(t *testing.T) {
	if code := serveWithIdentity("t", RoleAdmin, RoleAdmin); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_AdminDeniedOnEmployeeRoutes(t *testing.T) {
	if code := serveWithIdentity("t", RoleAdmin, RoleEmployee); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAnyRole_UnknownRoleDenied(t *testing.T) {
	if code := serveWithIdentity("t", "owner", "owner"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown role, got %d", code)
	}
}

func TestRequireTenant(t *testing.T) {
	if code := serveWithIdentity("", RoleAdmin, RoleAdmin); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
