package assignment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSnapshot marks input the assigners cannot decide on:
	// an empty ID or an ID repeated within one list.
	ErrInvalidSnapshot = errors.New("assignment: invalid snapshot")

	// ErrDepartingEmployeeIncluded is returned by Reclaim when the roster still
	// contains the employee whose leads are being redistributed.
	ErrDepartingEmployeeIncluded = errors.New("assignment: departing employee present in roster")
)

func validateLeads(leads []LeadSnapshot) error {
	seen := make(map[string]struct{}, len(leads))
	for i, l := range leads {
		if l.ID == "" {
			return fmt.Errorf("%w: lead at index %d has empty id", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate lead id %q", ErrInvalidSnapshot, l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}

func validateEmployees(employees []EmployeeSnapshot) error {
	seen := make(map[string]struct{}, len(employees))
	for i, e := range employees {
		if e.ID == "" {
			return fmt.Errorf("%w: employee at index %d has empty id", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate employee id %q", ErrInvalidSnapshot, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
