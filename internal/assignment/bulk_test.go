package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignBulk_NoEmployees(t *testing.T) {
	leads := []LeadSnapshot{{ID: "l1", Name: "A"}, {ID: "l2", Name: "B"}}

	res, err := AssignBulk(leads, nil)
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.Len(t, res.Assignments, 2)
	for i, d := range res.Assignments {
		assert.Equal(t, leads[i].ID, d.LeadID)
		assert.False(t, d.Assigned())
		assert.Equal(t, ReasonNoEmployees, d.Reason)
	}
	assert.Equal(t, BulkSummary{Total: 2, Unassigned: 2}, res.Summary)
}

func TestAssignBulk_FirstMatchWins(t *testing.T) {
	employees := []EmployeeSnapshot{
		{ID: "e1", FirstName: "Ravi", LastName: "K", Location: "Delhi", Languages: "Tamil"},
		{ID: "e2", FirstName: "Meera", LastName: "S", Location: "Chennai", Languages: "Hindi"},
	}
	leads := []LeadSnapshot{
		// e1 matches on language before e2 is even looked at.
		{ID: "l1", Location: "Chennai", Language: "Tamil"},
		{ID: "l2", Location: "delhi", Language: "Hindi"},
		{ID: "l3", Location: "Pune", Language: "hindi"},
		{ID: "l4", Location: "Pune", Language: "Marathi"},
	}

	res, err := AssignBulk(leads, employees)
	require.NoError(t, err)
	require.True(t, res.Success)

	want := []struct {
		to     string
		reason Reason
	}{
		{"e1", ReasonLanguageMatch},
		{"e1", ReasonLocationMatch},
		{"e2", ReasonLanguageMatch},
		{"", ReasonNoMatch},
	}
	require.Len(t, res.Assignments, len(want))
	for i, w := range want {
		d := res.Assignments[i]
		assert.Equal(t, leads[i].ID, d.LeadID, "order preserved")
		assert.Equal(t, w.to, d.AssignedTo, "lead %s", d.LeadID)
		assert.Equal(t, w.reason, d.Reason, "lead %s", d.LeadID)
	}
	assert.Equal(t, "Ravi K", res.Assignments[0].EmployeeName)
	assert.Empty(t, res.Assignments[3].EmployeeName)
	assert.Equal(t, BulkSummary{Total: 4, Assigned: 3, Unassigned: 1}, res.Summary)
}

func TestAssignBulk_LocationReasonWinsWhenBothMatch(t *testing.T) {
	employees := []EmployeeSnapshot{{ID: "e1", Location: "Goa", Languages: "Konkani"}}
	res, err := AssignBulk([]LeadSnapshot{{ID: "l1", Location: "GOA", Language: "konkani"}}, employees)
	require.NoError(t, err)
	assert.Equal(t, ReasonLocationMatch, res.Assignments[0].Reason)
}

func TestAssignBulk_NoCapacityLimit(t *testing.T) {
	employees := []EmployeeSnapshot{{ID: "e1", Location: "Goa"}, {ID: "e2", Location: "Goa"}}
	leads := make([]LeadSnapshot, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		leads = append(leads, LeadSnapshot{ID: id, Location: "goa"})
	}

	res, err := AssignBulk(leads, employees)
	require.NoError(t, err)
	for _, d := range res.Assignments {
		assert.Equal(t, "e1", d.AssignedTo)
	}
}

func TestAssignBulk_EmptyBatch(t *testing.T) {
	res, err := AssignBulk(nil, []EmployeeSnapshot{{ID: "e1"}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Assignments)
	assert.Equal(t, BulkSummary{}, res.Summary)
}

func TestAssignBulk_IsDeterministic(t *testing.T) {
	employees := []EmployeeSnapshot{{ID: "e1", Location: "Goa"}, {ID: "e2", Languages: "Hindi"}}
	leads := []LeadSnapshot{{ID: "l1", Language: "hindi"}, {ID: "l2", Location: "goa"}, {ID: "l3"}}

	first, err := AssignBulk(leads, employees)
	require.NoError(t, err)
	second, err := AssignBulk(leads, employees)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssignBulk_RejectsInvalidSnapshots(t *testing.T) {
	_, err := AssignBulk([]LeadSnapshot{{ID: ""}}, nil)
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = AssignBulk([]LeadSnapshot{{ID: "l1"}, {ID: "l1"}}, nil)
	require.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = AssignBulk(nil, []EmployeeSnapshot{{ID: "e1"}, {ID: "e1"}})
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}
