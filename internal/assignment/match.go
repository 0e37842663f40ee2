package assignment

import "strings"

// MatchResult reports which attributes of an employee agree with a lead.
type MatchResult struct {
	Location bool
	Language bool
}

// Any is true when at least one attribute matched.
func (m MatchResult) Any() bool { return m.Location || m.Language }

// Both is true when location and language both matched.
func (m MatchResult) Both() bool { return m.Location && m.Language }

// Match compares an employee with a lead.
// An attribute matches only when both sides are non-empty and equal ignoring case.
func Match(e EmployeeSnapshot, l LeadSnapshot) MatchResult {
	return MatchResult{
		Location: sameText(e.Location, l.Location),
		Language: sameText(e.Languages, l.Language),
	}
}

func sameText(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
