package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crm-platform/internal/activity"
	"crm-platform/internal/auth"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
	"crm-platform/internal/rbac"
	"crm-platform/internal/reporting"
	"crm-platform/internal/workflow"
)

// ActivityRecorder receives session events.
type ActivityRecorder interface {
	Record(ctx context.Context, e activity.Event)
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth      *auth.Manager
	Accounts  *employees.Service
	Leads     *leads.Service
	Workflow  *workflow.Service
	Reporting *reporting.Service
	Activity  ActivityRecorder

	// UploadMaxBytes caps the lead CSV request body. Zero means 5 MiB.
	UploadMaxBytes int64
	Now            func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// identity reads the caller set by auth.RequireAccessToken.
func identity(c *gin.Context) (userID, tenantID, role string) {
	ctx := c.Request.Context()
	userID, _ = auth.UserID(ctx)
	tenantID, _ = auth.TenantID(ctx)
	role, _ = auth.Role(ctx)
	return userID, tenantID, role
}

func actorOf(userID, role string) activity.Actor {
	if rbac.IsAdmin(role) {
		return activity.Actor{ID: userID, Role: activity.RoleAdmin}
	}
	return activity.Actor{ID: userID, Role: activity.RoleEmployee}
}

func (h Handlers) record(ctx context.Context, e activity.Event) {
	if h.Activity != nil {
		h.Activity.Record(ctx, e)
	}
}

// RequireTenantAndAnyRole bundles the tenant and role checks for a route group.
func RequireTenantAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireTenant(), rbac.RequireAnyRole(roles...)}
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
