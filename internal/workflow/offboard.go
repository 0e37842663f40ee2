package workflow

import (
	"context"
	"fmt"

	"crm-platform/internal/activity"
	"crm-platform/internal/assignment"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
	"crm-platform/internal/metrics"
)

// OffboardEmployee removes an employee after spreading their open leads across the
// remaining active roster. Closed leads keep their historical owner id.
func (s *Service) OffboardEmployee(ctx context.Context, actor activity.Actor, tenantID, employeeID string) (assignment.ReclaimResult, error) {
	var out assignment.ReclaimResult
	err := s.withTenantLock(ctx, metrics.OpReclaim, tenantID, func() error {
		started := s.now()
		departing, err := s.Employees.Get(ctx, tenantID, employeeID)
		if err != nil {
			return err
		}

		open, err := s.Leads.List(ctx, tenantID, leads.Filter{AssignedTo: departing.ID, Status: leads.StatusOpen, Order: leads.OrderImport})
		if err != nil {
			return fmt.Errorf("workflow: load open leads: %w", err)
		}

		if err := s.Employees.SetActive(ctx, tenantID, departing.ID, false); err != nil {
			return fmt.Errorf("workflow: deactivate employee: %w", err)
		}
		roster, err := s.Employees.Roster(ctx, tenantID, departing.ID)
		if err != nil {
			s.reactivate(ctx, tenantID, departing.ID)
			return fmt.Errorf("workflow: load roster: %w", err)
		}

		res, err := assignment.Reclaim(departing.ID, leads.Snapshots(open), employees.Snapshots(roster))
		if err != nil {
			s.reactivate(ctx, tenantID, departing.ID)
			return err
		}
		err = s.inTx(ctx, func(ctx context.Context) error {
			if err := s.Leads.ApplyAssignments(ctx, tenantID, leads.WritesFromDecisions(res.Assignments, s.now(), true)); err != nil {
				return fmt.Errorf("workflow: apply reclaim assignments: %w", err)
			}
			if err := s.Employees.Delete(ctx, tenantID, departing.ID); err != nil {
				return fmt.Errorf("workflow: delete employee: %w", err)
			}
			return nil
		})
		if err != nil {
			s.reactivate(ctx, tenantID, departing.ID)
			return err
		}

		for _, d := range res.Assignments {
			if d.Assigned() {
				s.record(ctx, activity.LeadAssigned(tenantID, actor, d))
			}
		}

		s.Metrics.ObserveDecisions(metrics.OpReclaim, res.Assignments)
		s.Metrics.ObservePass(metrics.OpReclaim, started)
		s.log().Info("employee offboarded",
			"tenant_id", tenantID,
			"employee_id", departing.ID,
			"leads", res.Summary.TotalLeads,
			"reassigned", res.Summary.Reassigned,
			"unassigned", res.Summary.Unassigned,
		)
		out = res
		return nil
	})
	if err != nil {
		return assignment.ReclaimResult{}, err
	}
	return out, nil
}

// reactivate undoes the deactivation when the pass aborts before its commit.
func (s *Service) reactivate(ctx context.Context, tenantID, employeeID string) {
	if err := s.Employees.SetActive(ctx, tenantID, employeeID, true); err != nil {
		s.log().Error("employee reactivation failed", "tenant_id", tenantID, "employee_id", employeeID, "err", err)
	}
}
