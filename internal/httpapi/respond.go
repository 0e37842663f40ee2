package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
	"crm-platform/internal/reporting"
	"crm-platform/internal/workflow"
	"crm-platform/pkg/logger"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// domainErrors maps service sentinels to client-facing responses. Order matters only
// for wrapped chains; each entry is matched with errors.Is.
var domainErrors = []errorMapping{
	{workflow.ErrTenantBusy, http.StatusConflict, "Another assignment is in progress, retry shortly"},
	{leads.ErrNotAssigned, http.StatusNotFound, "Lead not found or not assigned to you"},
	{leads.ErrNotFound, http.StatusNotFound, "Lead not found"},
	{leads.ErrInvalidTemperature, http.StatusBadRequest, "Invalid temperature. Must be hot, warm, or cold"},
	{leads.ErrAlreadyClosed, http.StatusBadRequest, "Lead is already closed"},
	{leads.ErrFutureAppointment, http.StatusBadRequest, "Cannot close lead with future appointment. Please wait until after the appointment date."},
	{leads.ErrAppointmentInput, http.StatusBadRequest, "Please provide appointment date and time slot"},
	{leads.ErrAppointmentPast, http.StatusBadRequest, "Appointment date must be in the future"},
	{leads.ErrAppointmentEarly, http.StatusBadRequest, "Appointment date must be after the lead assignment date"},
	{leads.ErrSlotTaken, http.StatusConflict, "Time slot is already booked"},
	{leads.ErrScheduleScope, http.StatusBadRequest, `Query param type must be either "today" or "all"`},
	{leads.ErrEmptyCSV, http.StatusBadRequest, "CSV file is empty"},
	{employees.ErrNotFound, http.StatusNotFound, "Employee not found"},
	{employees.ErrEmailTaken, http.StatusBadRequest, "Email already exists"},
	{employees.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{reporting.ErrInvalidRequest, http.StatusBadRequest, "Invalid request"},
}

// writeError maps err onto a response. Unknown errors are logged and hidden behind a 500.
func writeError(c *gin.Context, err error) {
	var verr *employees.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "fields": verr.Fields})
		return
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			fail(c, m.status, m.message)
			return
		}
	}
	logger.FromGin(c).Error("request failed", "path", c.FullPath(), "err", err)
	fail(c, http.StatusInternalServerError, "Internal server error")
}
