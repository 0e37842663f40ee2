package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-platform/internal/employees"
)

type profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func profileOf(e employees.Employee) profile {
	return profile{FirstName: e.FirstName, LastName: e.LastName, Email: e.Email}
}

func (h Handlers) Profile(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	emp, err := h.Accounts.Get(c.Request.Context(), tenantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, profileOf(emp), "")
}

// UpdateProfile lets employees change their names, email and password.
func (h Handlers) UpdateProfile(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	var req employees.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	emp, changed, err := h.Accounts.UpdateProfile(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	msg := "No changes made"
	if len(changed) > 0 {
		msg = "Profile updated successfully. Updated: " + strings.Join(changed, ", ")
	}
	respond(c, http.StatusOK, profileOf(emp), msg)
}
