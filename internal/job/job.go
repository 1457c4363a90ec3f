// Package job defines the job application record, its form data and the
// configuration shared by the jt commands.
package job

import (
	"strings"
	"time"
)

// Status is the pipeline stage of an application.
type Status string

// Status constants.
const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"

	// StatusAll matches every status in queries. It is never stored.
	StatusAll Status = "All"
)

// DefaultStatus is assigned to new applications when none is given.
const DefaultStatus = StatusApplied

// Layouts used for the string-typed date fields.
const (
	// DateLayout is the calendar date layout of ApplicationDate.
	DateLayout = "2006-01-02"

	// TimestampLayout matches JavaScript's Date.toISOString so exported
	// files stay interchangeable with the browser version of the tracker.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// Application is one tracked job application.
//
// Field names in JSON are part of the persisted and exported format and
// must not change.
type Application struct {
	ID              string `json:"id"`
	CompanyName     string `json:"companyName"`
	JobTitle        string `json:"jobTitle"`
	Status          Status `json:"status"`
	ApplicationDate string `json:"applicationDate"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// Form holds the user-editable fields of an [Application].
type Form struct {
	CompanyName     string `json:"companyName" validate:"required"`
	JobTitle        string `json:"jobTitle" validate:"required"`
	Status          Status `json:"status" validate:"required,jobstatus"`
	ApplicationDate string `json:"applicationDate" validate:"required,datetime=2006-01-02"`
	Notes           string `json:"notes"`
}

// Form returns the editable fields of a.
func (a *Application) Form() Form {
	return Form{
		CompanyName:     a.CompanyName,
		JobTitle:        a.JobTitle,
		Status:          a.Status,
		ApplicationDate: a.ApplicationDate,
		Notes:           a.Notes,
	}
}

// Apply copies all fields of f over the editable fields of a.
func (a *Application) Apply(f Form) {
	a.CompanyName = f.CompanyName
	a.JobTitle = f.JobTitle
	a.Status = f.Status
	a.ApplicationDate = f.ApplicationDate
	a.Notes = f.Notes
}

// Statuses returns the stored statuses in pipeline order.
func Statuses() []Status {
	return []Status{StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}
}

// IsValid reports whether s is one of the four stored statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	default:
		return false
	}
}

// ParseStatus resolves a user supplied status name, ignoring case.
// "all" resolves to [StatusAll] only when allowAll is set.
func ParseStatus(raw string, allowAll bool) (Status, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrStatusEmpty
	}

	if allowAll && strings.EqualFold(name, string(StatusAll)) {
		return StatusAll, nil
	}

	for _, s := range Statuses() {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}

	return "", &InvalidStatusError{Value: raw}
}

// FormatTimestamp renders t in [TimestampLayout] (always UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO 8601 timestamp as written by [FormatTimestamp]
// or any RFC 3339 producer.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Today returns the calendar date of now in [DateLayout].
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
