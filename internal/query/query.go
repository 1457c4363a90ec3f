// Package query derives filtered, searched and sorted views of a list of
// applications. Every function is pure: inputs are never modified and the
// result is always a fresh slice.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// Order selects how [Apply] sorts its result.
type Order string

// Sort orders.
const (
	OrderDate     Order = "date"
	OrderPriority Order = "priority"
)

// Orders returns the supported sort orders.
func Orders() []Order {
	return []Order{OrderDate, OrderPriority}
}

// Params describes a dashboard view.
type Params struct {
	Search string
	Status job.Status // empty or job.StatusAll keeps every status
	Order  Order      // empty means OrderDate
}

// Apply searches, then filters by status, then sorts. Sorting always runs
// last so it is never undone by the other steps.
func Apply(list []job.Application, p Params) []job.Application {
	out := Search(list, p.Search)

	if p.Status != "" {
		out = FilterByStatus(out, p.Status)
	}

	if p.Order == OrderPriority {
		return SortByPriority(out)
	}

	return SortByDate(out)
}

// SortByDate orders by ApplicationDate, newest first. The sort is stable and
// dates that do not parse sort after all others.
func SortByDate(list []job.Application) []job.Application {
	out := slices.Clone(list)
	slices.SortStableFunc(out, compareDateDesc)

	return out
}

// SortByPriority orders by status priority (see [Describe]) and then by
// date, newest first.
func SortByPriority(list []job.Application) []job.Application {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b job.Application) int {
		if c := cmp.Compare(Describe(a.Status).Priority, Describe(b.Status).Priority); c != 0 {
			return c
		}

		return compareDateDesc(a, b)
	})

	return out
}

func compareDateDesc(a, b job.Application) int {
	ta, okA := ParseDate(a.ApplicationDate)
	tb, okB := ParseDate(b.ApplicationDate)

	switch {
	case okA && okB:
		return tb.Compare(ta)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// ParseDate parses an application date. Plain calendar dates and full
// RFC 3339 timestamps are accepted; dates are taken as UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(job.DateLayout, s); err == nil {
		return t, true
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}

	return time.Time{}, false
}

// FilterByStatus keeps applications with the given status.
// [job.StatusAll] keeps everything.
func FilterByStatus(list []job.Application, status job.Status) []job.Application {
	if status == job.StatusAll {
		return slices.Clone(list)
	}

	out := make([]job.Application, 0, len(list))

	for _, a := range list {
		if a.Status == status {
			out = append(out, a)
		}
	}

	return out
}

// Search keeps applications whose company name or job title contains q,
// ignoring case. A blank q keeps everything.
func Search(list []job.Application, q string) []job.Application {
	if strings.TrimSpace(q) == "" {
		return slices.Clone(list)
	}

	fold := cases.Fold()
	needle := fold.String(q)

	out := make([]job.Application, 0, len(list))

	for _, a := range list {
		if strings.Contains(fold.String(a.CompanyName), needle) ||
			strings.Contains(fold.String(a.JobTitle), needle) {
			out = append(out, a)
		}
	}

	return out
}

// CountByStatus counts applications with the given status.
// [job.StatusAll] counts everything.
func CountByStatus(list []job.Application, status job.Status) int {
	if status == job.StatusAll {
		return len(list)
	}

	n := 0

	for _, a := range list {
		if a.Status == status {
			n++
		}
	}

	return n
}

// Statuses returns the selectable statuses, [job.StatusAll] first.
func Statuses() []job.Status {
	return append([]job.Status{job.StatusAll}, job.Statuses()...)
}
