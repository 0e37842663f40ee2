package reporting

import (
	"time"

	"crm-platform/internal/leads"
)

// TimeRange is inclusive on both ends.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

type Metrics struct {
	UnassignedLeads   int `json:"unassigned_leads"`
	AssignedThisWeek  int `json:"assigned_this_week"`
	ActiveSalespeople int `json:"active_salespeople"`
	// ConversionRate is closed/total as a rounded percentage.
	ConversionRate int `json:"conversion_rate"`
}

type DailyClosed struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type RecentActivity struct {
	Message   string    `json:"message"`
	TimeAgo   string    `json:"time_ago"`
	Timestamp time.Time `json:"timestamp"`
}

type EmployeeRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmployeeCode  string `json:"employee_code"`
	AssignedLeads int    `json:"assigned_leads"`
	ClosedLeads   int    `json:"closed_leads"`
	Status        string `json:"status"`
	Location      string `json:"location,omitempty"`
	Languages     string `json:"languages,omitempty"`
}

type LeadRow struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone,omitempty"`
	ReceivedDate     string       `json:"received_date"`
	Status           leads.Status `json:"lead_status"`
	AssignedEmployee string       `json:"assigned_employee"`
	Location         string       `json:"location,omitempty"`
	Language         string       `json:"language,omitempty"`
}

// Dashboard is the admin overview for one tenant.
type Dashboard struct {
	Metrics          Metrics          `json:"metrics"`
	SalesAnalytics   []DailyClosed    `json:"sales_analytics"`
	RecentActivities []RecentActivity `json:"recent_activities"`
	EmployeeTable    []EmployeeRow    `json:"employee_table"`
}
