package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fountains-be/config"
)

// IssueType enum
type IssueType string

const (
	IssueNotWorking       IssueType = "not_working"
	IssueNeedsMaintenance IssueType = "needs_maintenance"
	IssueVandalized       IssueType = "vandalized"
	IssueLowPressure      IssueType = "low_pressure"
	IssueOther            IssueType = "other"
)

// FountainRef is a numeric fountain id that tolerates legacy records where
// fountain_id was stored as a string.
type FountainRef int

func (r *FountainRef) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("fountain_id must be numeric: %w", err)
	}
	*r = FountainRef(n)
	return nil
}

// Report is a user-submitted observation about a fountain's condition.
// Reports are append-only: never updated, never deleted.
type Report struct {
	ID            int         `json:"id"`
	FountainID    FountainRef `json:"fountain_id"`
	IssueType     IssueType   `json:"issue_type"`
	Description   *string     `json:"description"`
	ReporterEmail *string     `json:"reporter_email"`
	ReportedDate  time.Time   `json:"reported_date"`
}

// GetReportsByFountainID returns every report for the given fountain,
// newest first.
func GetReportsByFountainID(fountainID int) ([]Report, error) {
	var reports []Report
	if err := config.GetCollection("reports").Read(&reports); err != nil {
		return nil, err
	}

	result := make([]Report, 0, len(reports))
	for _, r := range reports {
		if int(r.FountainID) == fountainID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ReportedDate.After(result[j].ReportedDate)
	})
	return result, nil
}

// CreateReport assigns the next id, stamps reported_date with the current
// time and persists the report. Returns the new id.
func CreateReport(r Report) (int, error) {
	col := config.GetCollection("reports")

	var reports []Report
	newID := 0
	err := col.Update(&reports, func() (any, error) {
		maxID := 0
		for _, existing := range reports {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}

		id, err := col.NextID(maxID)
		if err != nil {
			return nil, err
		}
		newID = id

		r.ID = id
		r.ReportedDate = time.Now().UTC()

		return append(reports, r), nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// GetReportByID returns the report with the given id, or nil when no such
// report exists.
func GetReportByID(id int) (*Report, error) {
	var reports []Report
	if err := config.GetCollection("reports").Read(&reports); err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}
	return nil, nil
}
