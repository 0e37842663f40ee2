package assignment

// PendingLead is a backlog lead the new employee did not match.
type PendingLead struct {
	LeadID   string `json:"lead_id"`
	LeadName string `json:"lead_name"`
	Location string `json:"location,omitempty"`
	Language string `json:"language,omitempty"`
}

type OnboardSummary struct {
	TotalUnassigned int `json:"total_unassigned"`
	NewlyAssigned   int `json:"newly_assigned"`
	StillUnassigned int `json:"still_unassigned"`
}

// OnboardResult partitions the backlog: every lead lands in exactly one of
// Assignments or StillUnassigned.
type OnboardResult struct {
	Assignments     []Decision     `json:"assignments"`
	StillUnassigned []PendingLead  `json:"still_unassigned_leads"`
	Summary         OnboardSummary `json:"summary"`
}

// AssignOnboard offers the unassigned backlog to one newly created employee.
// Leads matching on location or language are assigned; the rest stay pending.
func AssignOnboard(employee EmployeeSnapshot, backlog []LeadSnapshot) (OnboardResult, error) {
	if err := validateEmployees([]EmployeeSnapshot{employee}); err != nil {
		return OnboardResult{}, err
	}
	if err := validateLeads(backlog); err != nil {
		return OnboardResult{}, err
	}

	res := OnboardResult{
		Assignments:     make([]Decision, 0, len(backlog)),
		StillUnassigned: make([]PendingLead, 0),
	}
	for _, l := range backlog {
		m := Match(employee, l)
		if !m.Any() {
			res.StillUnassigned = append(res.StillUnassigned, PendingLead{
				LeadID:   l.ID,
				LeadName: l.Name,
				Location: l.Location,
				Language: l.Language,
			})
			continue
		}
		res.Assignments = append(res.Assignments, assignedTo(l, employee, onboardReason(m)))
	}

	res.Summary = OnboardSummary{
		TotalUnassigned: len(backlog),
		NewlyAssigned:   len(res.Assignments),
		StillUnassigned: len(res.StillUnassigned),
	}
	return res, nil
}

func onboardReason(m MatchResult) Reason {
	switch {
	case m.Both():
		return ReasonLocationAndLanguage
	case m.Location:
		return ReasonLocationMatch
	default:
		return ReasonLanguageMatch
	}
}
