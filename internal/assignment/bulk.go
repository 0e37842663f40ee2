package assignment

// BulkSummary counts the outcome of a bulk pass.
type BulkSummary struct {
	Total      int `json:"total"`
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
}

// BulkResult is the output of AssignBulk.
// Success is false only when the roster was empty.
type BulkResult struct {
	Success     bool        `json:"success"`
	Assignments []Decision  `json:"assignments"`
	Summary     BulkSummary `json:"summary"`
}

// AssignBulk assigns a batch of new leads across the full roster.
//
// Leads are decided in input order. For each lead the roster is scanned in order and
// the first employee matching on location or language wins; location is checked first
// and decides the reason. There is no capacity limit, so one employee may take every lead.
func AssignBulk(leads []LeadSnapshot, employees []EmployeeSnapshot) (BulkResult, error) {
	if err := validateLeads(leads); err != nil {
		return BulkResult{}, err
	}
	if err := validateEmployees(employees); err != nil {
		return BulkResult{}, err
	}

	out := make([]Decision, 0, len(leads))
	if len(employees) == 0 {
		for _, l := range leads {
			out = append(out, unassigned(l, ReasonNoEmployees))
		}
		return BulkResult{
			Success:     false,
			Assignments: out,
			Summary:     BulkSummary{Total: len(leads), Unassigned: len(leads)},
		}, nil
	}

	for _, l := range leads {
		out = append(out, firstMatch(l, employees))
	}
	return BulkResult{Success: true, Assignments: out, Summary: summarizeBulk(out)}, nil
}

func firstMatch(l LeadSnapshot, employees []EmployeeSnapshot) Decision {
	for _, e := range employees {
		m := Match(e, l)
		if m.Location {
			return assignedTo(l, e, ReasonLocationMatch)
		}
		if m.Language {
			return assignedTo(l, e, ReasonLanguageMatch)
		}
	}
	return unassigned(l, ReasonNoMatch)
}

func summarizeBulk(ds []Decision) BulkSummary {
	s := BulkSummary{Total: len(ds)}
	for _, d := range ds {
		if d.Assigned() {
			s.Assigned++
		}
	}
	s.Unassigned = s.Total - s.Assigned
	return s
}
