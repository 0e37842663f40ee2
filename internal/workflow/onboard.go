package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-platform/internal/activity"
	"crm-platform/internal/assignment"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
	"crm-platform/internal/metrics"
)

// OnboardEmployee creates an employee and hands them every open, unassigned lead
// matching their location or languages. The result is nil when there was no backlog.
func (s *Service) OnboardEmployee(ctx context.Context, actor activity.Actor, tenantID string, in employees.NewEmployee) (employees.Employee, *assignment.OnboardResult, error) {
	emp, err := s.Accounts.Build(tenantID, actor.ID, in)
	if err != nil {
		return employees.Employee{}, nil, err
	}

	var out *assignment.OnboardResult
	err = s.withTenantLock(ctx, metrics.OpOnboard, tenantID, func() error {
		started := s.now()
		var res assignment.OnboardResult
		created := false
		err := s.inTx(ctx, func(ctx context.Context) error {
			if err := s.Employees.Create(ctx, emp); err != nil {
				return err
			}
			created = true

			backlog, err := s.Leads.List(ctx, tenantID, leads.Filter{Unassigned: true, Status: leads.StatusOpen, Order: leads.OrderImport})
			if err != nil {
				return fmt.Errorf("workflow: load backlog: %w", err)
			}
			if len(backlog) == 0 {
				return nil
			}
			if res, err = assignment.AssignOnboard(emp.Snapshot(), leads.Snapshots(backlog)); err != nil {
				return err
			}
			if err := s.Leads.ApplyAssignments(ctx, tenantID, leads.WritesFromDecisions(res.Assignments, s.now(), false)); err != nil {
				return fmt.Errorf("workflow: apply onboard assignments: %w", err)
			}
			out = &res
			return nil
		})
		if err != nil {
			if created && s.Tx == nil {
				s.discard(tenantID, emp.ID)
			}
			out = nil
			return err
		}
		if out == nil {
			return nil
		}

		for _, d := range res.Assignments {
			s.record(ctx, activity.LeadAssigned(tenantID, actor, d))
		}
		s.Metrics.ObserveDecisions(metrics.OpOnboard, res.Assignments)
		s.Metrics.ObservePass(metrics.OpOnboard, started)
		s.log().Info("employee onboarded",
			"tenant_id", tenantID,
			"employee_id", emp.ID,
			"backlog", res.Summary.TotalUnassigned,
			"assigned", res.Summary.NewlyAssigned,
		)
		return nil
	})
	if err != nil {
		return employees.Employee{}, nil, err
	}
	return emp, out, nil
}

// discard removes an employee created by a pass that then failed.
func (s *Service) discard(tenantID, employeeID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Employees.Delete(ctx, tenantID, employeeID); err != nil && !errors.Is(err, employees.ErrNotFound) {
		s.log().Error("discard employee failed", "tenant_id", tenantID, "employee_id", employeeID, "err", err)
	}
}
