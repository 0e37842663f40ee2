package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-platform/internal/activity"
	"crm-platform/internal/auth"
	"crm-platform/internal/employees"
	"crm-platform/internal/rbac"
)

type loginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeLogin checks credentials and issues a token pair.
func (h Handlers) EmployeeLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.TenantID) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "tenant_id, email and password are required")
		return
	}

	emp, err := h.Accounts.Authenticate(c.Request.Context(), req.TenantID, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	pair, err := h.Auth.IssuePair(h.now(), emp.ID, emp.TenantID, rbac.RoleEmployee)
	if err != nil {
		writeError(c, err)
		return
	}

	h.record(c.Request.Context(), activity.EmployeeSession(emp.TenantID, activity.ActionEmployeeLogin, emp.ID, emp.FullName()))
	respond(c, http.StatusOK, gin.H{"tokens": pair, "employee": emp}, "Login successful")
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshSession trades an employee refresh token for a new pair.
// The employee is re-read, so a removed account cannot refresh.
func (h Handlers) RefreshSession(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		fail(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	claims, err := h.Auth.Verify(req.RefreshToken, auth.TokenTypeRefresh, h.now())
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	emp, err := h.Accounts.Get(c.Request.Context(), claims.TenantID, claims.UserID)
	if errors.Is(err, employees.ErrNotFound) || (err == nil && !emp.Active) {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	pair, err := h.Auth.IssuePair(h.now(), emp.ID, emp.TenantID, rbac.RoleEmployee)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"tokens": pair}, "Token refreshed")
}

// EmployeeLogout records the session end. Tokens are stateless and simply expire.
func (h Handlers) EmployeeLogout(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	emp, err := h.Accounts.Get(c.Request.Context(), tenantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.record(c.Request.Context(), activity.EmployeeSession(tenantID, activity.ActionEmployeeLogout, emp.ID, emp.FullName()))
	respond(c, http.StatusOK, nil, "Logout successful")
}
