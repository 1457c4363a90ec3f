package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// Display is how a status is presented to the user.
type Display struct {
	Label       string
	Icon        string
	Color       string // colour family name, e.g. "emerald"
	Description string
	Priority    int // 1 sorts first
}

var displays = map[job.Status]Display{
	job.StatusApplied: {
		Label:       "Applied",
		Icon:        "📝",
		Color:       "blue",
		Description: "Application submitted, waiting for response",
		Priority:    3,
	},
	job.StatusInterviewing: {
		Label:       "Interviewing",
		Icon:        "🤝",
		Color:       "amber",
		Description: "In the interview process",
		Priority:    2,
	},
	job.StatusOffer: {
		Label:       "Offer",
		Icon:        "🎉",
		Color:       "emerald",
		Description: "Job offer received!",
		Priority:    1,
	},
	job.StatusRejected: {
		Label:       "Rejected",
		Icon:        "❌",
		Color:       "red",
		Description: "Application not selected",
		Priority:    4,
	},
}

// Describe returns the presentation of status. Unknown values, including
// imported free-form ones, get a neutral fallback labelled with the raw value.
func Describe(status job.Status) Display {
	if d, ok := displays[status]; ok {
		return d
	}

	label := string(status)
	if label == "" {
		label = "Unknown"
	}

	return Display{
		Label:       label,
		Icon:        "📋",
		Color:       "slate",
		Description: "Status unknown",
		Priority:    5,
	}
}

// FormatDate renders an application date as "Jan 2, 2006". Values that do
// not parse are returned unchanged.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}

	return t.Format("Jan 2, 2006")
}

// RelativeTime describes how long before now the date s lies, in whole
// calendar days, weeks (7 days), months (30 days) or years (365 days).
// Days are counted in now's location. It returns "" when s does not parse
// and "Upcoming" for future dates.
func RelativeTime(s string, now time.Time) string {
	day, ok := calendarDay(s, now.Location())
	if !ok {
		return ""
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	diff := today.Sub(day)
	if diff < 0 {
		return "Upcoming"
	}

	days := int(diff / (24 * time.Hour))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return ago(days, "day")
	case days < 30:
		return ago(days/7, "week")
	case days < 365:
		return ago(days/30, "month")
	default:
		return ago(days/365, "year")
	}
}

// calendarDay returns the date s names as UTC midnight. Plain dates are
// taken as written; timestamps are moved into loc first.
func calendarDay(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(job.DateLayout, strings.TrimSpace(s)); err == nil {
		return t, true
	}

	t, ok := ParseDate(s)
	if !ok {
		return time.Time{}, false
	}

	y, m, d := t.In(loc).Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

func ago(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}

	return fmt.Sprintf("%d %ss ago", n, unit)
}
