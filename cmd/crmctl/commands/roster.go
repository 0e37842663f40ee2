package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"crm-platform/internal/assignment"
	"crm-platform/internal/leads"
)

// readEmployees loads a roster CSV with columns id, firstName, lastName, location, languages.
// Row order is roster order.
func readEmployees(r io.Reader) ([]assignment.EmployeeSnapshot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("employees CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading employees header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	if _, ok := col["id"]; !ok {
		return nil, errors.New("employees CSV needs an id column")
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	out := make([]assignment.EmployeeSnapshot, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading employees row %d: %w", line, err)
		}
		e := assignment.EmployeeSnapshot{
			ID:        field(rec, "id"),
			FirstName: field(rec, "firstName"),
			LastName:  field(rec, "lastName"),
			Location:  field(rec, "location"),
			Languages: field(rec, "languages"),
		}
		if e.ID == "" {
			return nil, fmt.Errorf("employees row %d: id is required", line)
		}
		out = append(out, e)
	}
	return out, nil
}

// readLeads parses a lead upload and names each lead after its file row ("row-2", ...).
func readLeads(r io.Reader) ([]assignment.LeadSnapshot, error) {
	res, err := leads.ParseCSV(r, time.Now())
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		first := res.Errors[0]
		return nil, fmt.Errorf("leads CSV has %d invalid rows; row %d: %s", len(res.Errors), first.Row, first.Message)
	}
	out := make([]assignment.LeadSnapshot, 0, len(res.Leads))
	for i, l := range res.Leads {
		l.ID = fmt.Sprintf("row-%d", i+2)
		out = append(out, l.Snapshot())
	}
	return out, nil
}

func openAndRead[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return read(f)
}
