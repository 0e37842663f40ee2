package main

import (
	"context"
	"net/http"
	"time"

	"crm-platform/internal/httpapi"
	"crm-platform/internal/rbac"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc, gatherer prometheus.Gatherer, ready func(context.Context) error) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		httpapi.Healthz(c)
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.POST("/auth/employee/login", h.EmployeeLogin)
	v1.POST("/auth/refresh", h.RefreshSession)

	protected := v1.Group("")
	protected.Use(authMW)

	// Employee routes act on the caller's own leads.
	employee := protected.Group("")
	employee.Use(httpapi.RequireTenantAndAnyRole(rbac.RoleEmployee)...)
	{
		employee.POST("/auth/employee/logout", h.EmployeeLogout)
		employee.GET("/employee/profile", h.Profile)
		employee.PUT("/employee/profile", h.UpdateProfile)
		employee.GET("/employee/leads", h.MyLeads)
		employee.GET("/employee/leads/search", h.SearchLeads)
		employee.GET("/employee/schedule", h.Schedule)
		employee.PUT("/employee/leads/:id/temperature", h.SetTemperature)
		employee.PUT("/employee/leads/:id/close", h.CloseLead)
		employee.POST("/employee/leads/:id/appointment", h.ScheduleAppointment)
	}

	admin := protected.Group("/admin")
	admin.Use(httpapi.RequireTenantAndAnyRole(rbac.RoleAdmin)...)
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.POST("/leads/upload", h.UploadLeads)
		admin.GET("/leads", h.ListLeads)
		admin.GET("/employees", h.ListEmployees)
		admin.POST("/employees", h.CreateEmployee)
		admin.PUT("/employees/:id", h.UpdateEmployee)
		admin.DELETE("/employees/:id", h.DeleteEmployee)
	}
}

// corsFor allows the configured browser origins. It returns nil for an empty list.
func corsFor(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
