package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"crm-platform/internal/leads"
)

func (h Handlers) MyLeads(c *gin.Context) {
	userID, tenantID, _ := identity(c)

	status := leads.Status(strings.ToLower(strings.TrimSpace(c.Query("status"))))
	if status != "" && status != leads.StatusOpen && status != leads.StatusClosed {
		fail(c, http.StatusBadRequest, "Invalid or missing status")
		return
	}

	ls, err := h.Leads.ListForEmployee(c.Request.Context(), tenantID, userID, status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, ls, "")
}

// SearchLeads matches ?q against the caller's leads. An empty q lists them all.
func (h Handlers) SearchLeads(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	ls, err := h.Leads.Search(c.Request.Context(), tenantID, userID, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, ls, "")
}

type scheduleRow struct {
	LeadID        string         `json:"lead_id"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone,omitempty"`
	Date          string         `json:"date"`
	TimeSlot      string         `json:"time_slot"`
	CallType      leads.CallType `json:"call_type"`
	AppointmentAt time.Time      `json:"appointment_at"`
}

// Schedule lists the caller's appointments. ?type is today or all (default: open
// leads only) and ?q filters them.
func (h Handlers) Schedule(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	scope, err := leads.ParseScheduleScope(c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	ls, err := h.Leads.Schedule(c.Request.Context(), tenantID, userID, scope, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	loc := time.UTC
	if h.Leads.Location != nil {
		loc = h.Leads.Location
	}
	rows := make([]scheduleRow, 0, len(ls))
	for _, l := range ls {
		ct := l.CallType
		if ct == "" {
			ct = leads.CallTypeColdCall
		}
		rows = append(rows, scheduleRow{
			LeadID:        l.ID,
			Name:          l.Name,
			Phone:         l.Phone,
			Date:          l.Appointment.Date.In(loc).Format("01/02/06"),
			TimeSlot:      l.Appointment.TimeSlot,
			CallType:      ct,
			AppointmentAt: l.Appointment.Date,
		})
	}
	respond(c, http.StatusOK, rows, "")
}

type temperatureRequest struct {
	Temperature leads.Temperature `json:"temperature"`
}

func (h Handlers) SetTemperature(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	var req temperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	l, err := h.Leads.SetTemperature(c.Request.Context(), tenantID, userID, c.Param("id"), req.Temperature)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, l, "Lead temperature updated to "+string(l.Temperature))
}

func (h Handlers) CloseLead(c *gin.Context) {
	userID, tenantID, role := identity(c)
	ctx := c.Request.Context()

	emp, err := h.Accounts.Get(ctx, tenantID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	l, err := h.Leads.Close(ctx, tenantID, actorOf(userID, role), emp.FullName(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, l, "Lead closed successfully")
}

type appointmentRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

func (h Handlers) ScheduleAppointment(c *gin.Context) {
	userID, tenantID, _ := identity(c)
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	var date time.Time
	if req.Date != "" {
		d, ok := parseAppointmentDate(req.Date)
		if !ok {
			fail(c, http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
			return
		}
		date = d
	}

	l, err := h.Leads.ScheduleAppointment(c.Request.Context(), tenantID, userID, c.Param("id"), date, req.TimeSlot)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, l, "Appointment scheduled successfully")
}

func parseAppointmentDate(v string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}
