package workflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"crm-platform/internal/activity"
	"crm-platform/internal/assignment"
	"crm-platform/internal/employees"
	"crm-platform/internal/leads"
	"crm-platform/internal/metrics"
)

type ImportResult struct {
	BatchID    string                `json:"upload_batch_id"`
	Imported   int                   `json:"imported"`
	Assignment assignment.BulkResult `json:"assignment"`
	Leads      []leads.Lead          `json:"-"`
}

// ImportLeads bulk-assigns a parsed CSV batch across the active roster and stores it.
// Unmatched leads are stored unassigned. Nothing is stored when the insert fails.
func (s *Service) ImportLeads(ctx context.Context, actor activity.Actor, tenantID string, batch []leads.Lead) (ImportResult, error) {
	var res ImportResult
	err := s.withTenantLock(ctx, metrics.OpBulk, tenantID, func() error {
		started := s.now()
		res.BatchID = "batch_" + strconv.FormatInt(started.UnixMilli(), 10)

		stored := make([]leads.Lead, 0, len(batch))
		for _, l := range batch {
			l.ID = uuid.NewString()
			l.TenantID = tenantID
			l.AssignedTo = ""
			l.AssignedAt = nil
			l.UploadBatchID = res.BatchID
			l.UploadedBy = actor.ID
			if l.Status == "" {
				l.Status = leads.StatusOpen
			}
			if l.Temperature == "" {
				l.Temperature = leads.TemperatureWarm
			}
			if l.CallType == "" {
				l.CallType = leads.CallTypeColdCall
			}
			if l.CreatedAt.IsZero() {
				l.CreatedAt = started
			}
			l.UpdatedAt = started
			stored = append(stored, l)
		}

		roster, err := s.Employees.Roster(ctx, tenantID, "")
		if err != nil {
			return fmt.Errorf("workflow: load roster: %w", err)
		}
		bulk, err := assignment.AssignBulk(leads.Snapshots(stored), employees.Snapshots(roster))
		if err != nil {
			return err
		}

		// New leads are inserted already assigned, so the batch is one write.
		applyToLeads(stored, bulk.Assignments, s.now())
		if err := s.Leads.InsertBatch(ctx, stored); err != nil {
			return fmt.Errorf("workflow: insert leads: %w", err)
		}

		for _, d := range bulk.Assignments {
			if d.Assigned() {
				s.record(ctx, activity.LeadAssigned(tenantID, actor, d))
			}
		}
		s.Metrics.ObserveDecisions(metrics.OpBulk, bulk.Assignments)
		s.Metrics.ObservePass(metrics.OpBulk, started)
		s.log().Info("leads imported",
			"tenant_id", tenantID,
			"batch_id", res.BatchID,
			"total", bulk.Summary.Total,
			"assigned", bulk.Summary.Assigned,
			"unassigned", bulk.Summary.Unassigned,
		)

		res.Imported = len(stored)
		res.Assignment = bulk
		res.Leads = stored
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

// applyToLeads copies assigned decisions onto ls.
func applyToLeads(ls []leads.Lead, ds []assignment.Decision, at time.Time) {
	byID := make(map[string]assignment.Decision, len(ds))
	for _, d := range ds {
		byID[d.LeadID] = d
	}
	for i := range ls {
		d, ok := byID[ls[i].ID]
		if !ok || !d.Assigned() {
			continue
		}
		ls[i].AssignedTo = d.AssignedTo
		t := at
		ls[i].AssignedAt = &t
	}
}
