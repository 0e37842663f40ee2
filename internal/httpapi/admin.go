package httpapi

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
)

const defaultUploadMaxBytes = 5 << 20

func (h Handlers) Dashboard(c *gin.Context) {
	_, tenantID, _ := identity(c)
	d, err := h.Reporting.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, d, "")
}

// UploadLeads parses a CSV upload (multipart field "leads") and bulk-assigns it.
// Any invalid row rejects the whole file.
func (h Handlers) UploadLeads(c *gin.Context) {
	userID, tenantID, role := identity(c)

	limit := h.UploadMaxBytes
	if limit <= 0 {
		limit = defaultUploadMaxBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("leads")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(c, http.StatusRequestEntityTooLarge, "CSV file is too large")
			return
		}
		fail(c, http.StatusBadRequest, "Please upload a CSV file")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") && fh.Header.Get("Content-Type") != "text/csv" {
		fail(c, http.StatusBadRequest, "Only CSV files are allowed")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	parsed, err := leads.ParseCSV(f, h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	if !parsed.OK() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "CSV validation errors",
			"errors":  parsed.Errors,
			"summary": parsed.Summary,
		})
		return
	}

	res, err := h.Workflow.ImportLeads(c.Request.Context(), actorOf(userID, role), tenantID, parsed.Leads)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"batch_id":    res.BatchID,
		"summary":     res.Assignment.Summary,
		"assignments": res.Assignment.Assignments,
	}, "CSV uploaded successfully")
}

func (h Handlers) ListLeads(c *gin.Context) {
	_, tenantID, _ := identity(c)
	rows, err := h.Reporting.Leads(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, rows, "")
}

func (h Handlers) ListEmployees(c *gin.Context) {
	_, tenantID, _ := identity(c)
	rows, err := h.Reporting.Employees(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, rows, "")
}

type createEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	Languages string `json:"languages"`
}

// CreateEmployee onboards an employee and offers them the unassigned backlog.
func (h Handlers) CreateEmployee(c *gin.Context) {
	userID, tenantID, role := identity(c)
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	emp, res, err := h.Workflow.OnboardEmployee(c.Request.Context(), actorOf(userID, role), tenantID, employees.NewEmployee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Location:  req.Location,
		Languages: req.Languages,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	data := gin.H{"employee": emp}
	if res != nil {
		data["auto_assignment"] = res.Summary
		data["still_unassigned_leads"] = res.StillUnassigned
	}
	respond(c, http.StatusCreated, data, "Employee created successfully")
}

// UpdateEmployee edits names and email. A new email resets the password to its local part.
func (h Handlers) UpdateEmployee(c *gin.Context) {
	_, tenantID, _ := identity(c)
	var req employees.EmployeeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	emp, reset, err := h.Accounts.Update(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	msg := "Employee updated successfully"
	if reset {
		msg = "Employee updated successfully. Password has been reset to email prefix."
	}
	respond(c, http.StatusOK, gin.H{"employee": emp, "password_reset": reset}, msg)
}

// DeleteEmployee offboards an employee, spreading their open leads across the rest.
func (h Handlers) DeleteEmployee(c *gin.Context) {
	userID, tenantID, role := identity(c)
	ctx := c.Request.Context()
	id := c.Param("id")

	emp, err := h.Accounts.Get(ctx, tenantID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.Workflow.OffboardEmployee(ctx, actorOf(userID, role), tenantID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"deleted_employee":     emp.Email,
		"reassignment_summary": res.Summary,
	}, "Employee deleted successfully")
}
