package assignment

import "fmt"

type ReclaimSummary struct {
	TotalLeads int `json:"total_leads"`
	Reassigned int `json:"reassigned"`
	Unassigned int `json:"unassigned"`
}

type ReclaimResult struct {
	Assignments []Decision     `json:"assignments"`
	Summary     ReclaimSummary `json:"summary"`
}

// Reclaim redistributes the open leads of a departing employee across the remaining roster.
//
// Matching is not consulted. With at least as many employees as leads, lead i goes to
// employee i. Otherwise every employee receives a contiguous block of n/m leads in roster
// order and the trailing n%m leads stay unassigned.
//
// departingID must not appear in active.
func Reclaim(departingID string, leads []LeadSnapshot, active []EmployeeSnapshot) (ReclaimResult, error) {
	if err := validateLeads(leads); err != nil {
		return ReclaimResult{}, err
	}
	if err := validateEmployees(active); err != nil {
		return ReclaimResult{}, err
	}
	for _, e := range active {
		if departingID != "" && e.ID == departingID {
			return ReclaimResult{}, fmt.Errorf("%w: %s", ErrDepartingEmployeeIncluded, departingID)
		}
	}

	n, m := len(leads), len(active)
	out := make([]Decision, 0, n)

	switch {
	case m == 0:
		for _, l := range leads {
			out = append(out, unassigned(l, ReasonNoActiveEmployees))
		}
	case n == 0:
	case m >= n:
		for i, l := range leads {
			out = append(out, assignedTo(l, active[i], ReasonEqualDistribution))
		}
	default:
		per := n / m
		for i, l := range leads {
			k := i / per
			if k >= m {
				out = append(out, unassigned(l, ReasonRemainderUnassigned))
				continue
			}
			out = append(out, assignedTo(l, active[k], ReasonEqualDistribution))
		}
	}

	s := ReclaimSummary{TotalLeads: n}
	for _, d := range out {
		if d.Assigned() {
			s.Reassigned++
		}
	}
	s.Unassigned = n - s.Reassigned
	return ReclaimResult{Assignments: out, Summary: s}, nil
}
