package leads

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyCSV = errors.New("CSV file is empty")

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\+]?[(]?[0-9]{3}[)]?[-\s\.]?[(]?[0-9]{3}[)]?[-\s\.]?[0-9]{4,6}$`)
)

// RowError describes one rejected CSV row. Row is the 1-based line in the file; the header is row 1.
type RowError struct {
	Row     int               `json:"row"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

type ParseSummary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// ParseResult holds the accepted leads (no ID or tenant yet) and the rejected rows.
type ParseResult struct {
	Leads   []Lead       `json:"-"`
	Errors  []RowError   `json:"errors"`
	Summary ParseSummary `json:"summary"`
}

func (p ParseResult) OK() bool { return len(p.Errors) == 0 }

// ParseCSV reads a lead upload.
//
// Columns are matched by header name after trimming and BOM removal: name, email, phone,
// receivedDate, location, language, status (temperature), leadStatus, callType.
// name and email are required. Unknown columns are ignored.
func ParseCSV(r io.Reader, now time.Time) (ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ParseResult{}, ErrEmptyCSV
	}
	if err != nil {
		return ParseResult{}, fmt.Errorf("leads: read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
	}

	var res ParseResult
	index := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("leads: read csv row %d: %w", index+2, err)
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}

		lead, msg := leadFromRow(row, now)
		if msg != "" {
			res.Errors = append(res.Errors, RowError{Row: index + 2, Message: msg, Data: row})
		} else {
			res.Leads = append(res.Leads, lead)
		}
		index++
	}

	if index == 0 {
		return ParseResult{}, ErrEmptyCSV
	}
	res.Summary = ParseSummary{Total: index, Valid: len(res.Leads), Invalid: len(res.Errors)}
	return res, nil
}

func leadFromRow(row map[string]string, now time.Time) (Lead, string) {
	if row["name"] == "" || row["email"] == "" {
		return Lead{}, "Name and email are required"
	}

	l := Lead{
		Name:        row["name"],
		Email:       strings.ToLower(row["email"]),
		Phone:       row["phone"],
		ReceivedAt:  now,
		Location:    row["location"],
		Language:    row["language"],
		Temperature: TemperatureWarm,
		Status:      StatusOpen,
		CallType:    CallTypeColdCall,
	}
	if !emailRe.MatchString(l.Email) {
		return Lead{}, "Invalid email format"
	}
	if l.Phone != "" && !phoneRe.MatchString(l.Phone) {
		return Lead{}, "Invalid phone format"
	}
	if v := row["receivedDate"]; v != "" {
		t, ok := parseDate(v)
		if !ok {
			return Lead{}, "Invalid receivedDate"
		}
		l.ReceivedAt = t
	}
	if t := Temperature(strings.ToLower(row["status"])); t.Valid() {
		l.Temperature = t
	}
	if s := Status(strings.ToLower(row["leadStatus"])); s == StatusClosed {
		l.Status = s
		closed := now
		l.ClosedAt = &closed
	}
	if c := CallType(strings.ToLower(row["callType"])); c == CallTypeReferral {
		l.CallType = c
	}
	return l, ""
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05", "01/02/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
