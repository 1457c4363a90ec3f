package query_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/query"
)

func app(id, company, title string, status job.Status, date string) job.Application {
	return job.Application{
		ID:              id,
		CompanyName:     company,
		JobTitle:        title,
		Status:          status,
		ApplicationDate: date,
	}
}

func ids(list []job.Application) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}

	return out
}

func sample() []job.Application {
	return []job.Application{
		app("a", "Acme Corp", "Backend Engineer", job.StatusApplied, "2024-03-01"),
		app("b", "Globex", "Designer", job.StatusRejected, "2024-01-15"),
		app("c", "Initech", "Platform Engineer", job.StatusOffer, "2024-06-20"),
		app("d", "Umbrella", "Acme Liaison", job.StatusInterviewing, "2024-03-01"),
		app("e", "Hooli", "Analyst", job.StatusApplied, "not a date"),
	}
}

func Test_SortByDate_Orders_Newest_First(t *testing.T) {
	t.Parallel()

	list := []job.Application{
		app("1", "x", "x", job.StatusApplied, "2024-03-01"),
		app("2", "x", "x", job.StatusApplied, "2024-01-15"),
		app("3", "x", "x", job.StatusApplied, "2024-06-20"),
	}

	got := ids(query.SortByDate(list))
	want := []string{"3", "1", "2"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func Test_SortByDate_Is_Stable_And_Puts_Unparseable_Last(t *testing.T) {
	t.Parallel()

	got := ids(query.SortByDate(sample()))
	want := []string{"c", "a", "d", "b", "e"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func Test_SortByDate_Does_Not_Modify_Input(t *testing.T) {
	t.Parallel()

	list := sample()
	before := ids(list)

	_ = query.SortByDate(list)
	_ = query.SortByPriority(list)

	if diff := cmp.Diff(before, ids(list)); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
}

func Test_SortByPriority_Orders_Offer_Interviewing_Applied_Rejected_Unknown(t *testing.T) {
	t.Parallel()

	list := append(sample(),
		app("f", "Weird", "Thing", job.Status("Ghosted"), "2025-01-01"),
		app("g", "Newer", "Thing", job.StatusApplied, "2024-12-01"),
	)

	got := ids(query.SortByPriority(list))
	want := []string{"c", "d", "g", "a", "e", "b", "f"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func Test_FilterByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status job.Status
		want   []string
	}{
		{status: job.StatusApplied, want: []string{"a", "e"}},
		{status: job.StatusOffer, want: []string{"c"}},
		{status: job.Status("Ghosted"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			got := ids(query.FilterByStatus(sample(), tt.status))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filter (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_FilterByStatus_All_Returns_Input_Unchanged(t *testing.T) {
	t.Parallel()

	list := sample()
	got := query.FilterByStatus(list, job.StatusAll)

	if diff := cmp.Diff(list, got); diff != "" {
		t.Errorf("All filter (-want +got):\n%s", diff)
	}

	got[0].CompanyName = "changed"

	if list[0].CompanyName != "Acme Corp" {
		t.Error("result shares backing array with input")
	}
}

func Test_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "LowercaseMatchesCompany", query: "acme", want: []string{"a", "d"}},
		{name: "MatchesTitle", query: "ENGINEER", want: []string{"a", "c"}},
		{name: "Substring", query: "lob", want: []string{"b"}},
		{name: "NoMatch", query: "zzz", want: []string{}},
		{name: "Blank", query: "   ", want: []string{"a", "b", "c", "d", "e"}},
		{name: "Empty", query: "", want: []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(query.Search(sample(), tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("search %q (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func Test_Search_Folds_Unicode_Case(t *testing.T) {
	t.Parallel()

	list := []job.Application{app("1", "Straße GmbH", "Entwickler", job.StatusApplied, "2024-01-01")}

	if got := query.Search(list, "STRASSE"); len(got) != 1 {
		t.Errorf("search STRASSE matched %d, want 1", len(got))
	}
}

func Test_CountByStatus(t *testing.T) {
	t.Parallel()

	list := sample()

	counts := map[job.Status]int{}
	for _, s := range query.Statuses() {
		counts[s] = query.CountByStatus(list, s)
	}

	want := map[job.Status]int{
		job.StatusAll:          5,
		job.StatusApplied:      2,
		job.StatusInterviewing: 1,
		job.StatusOffer:        1,
		job.StatusRejected:     1,
	}

	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts (-want +got):\n%s", diff)
	}
}

func Test_Apply_Searches_Filters_Then_Sorts(t *testing.T) {
	t.Parallel()

	list := append(sample(), app("f", "Acme Labs", "Engineer", job.StatusApplied, "2024-09-09"))

	tests := []struct {
		name   string
		params query.Params
		want   []string
	}{
		{name: "Defaults", params: query.Params{}, want: []string{"f", "c", "a", "d", "b", "e"}},
		{name: "SearchAndStatus", params: query.Params{Search: "acme", Status: job.StatusApplied}, want: []string{"f", "a"}},
		{name: "AllStatus", params: query.Params{Search: "acme", Status: job.StatusAll}, want: []string{"f", "a", "d"}},
		{name: "Priority", params: query.Params{Search: "acme", Order: query.OrderPriority}, want: []string{"d", "f", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(query.Apply(list, tt.params))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("apply (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Describe_Known_And_Fallback(t *testing.T) {
	t.Parallel()

	offer := query.Describe(job.StatusOffer)
	if offer.Icon != "🎉" || offer.Color != "emerald" || offer.Priority != 1 {
		t.Errorf("Describe(Offer)=%+v", offer)
	}

	unknown := query.Describe(job.Status("Ghosted"))
	want := query.Display{
		Label:       "Ghosted",
		Icon:        "📋",
		Color:       "slate",
		Description: "Status unknown",
		Priority:    5,
	}

	if diff := cmp.Diff(want, unknown); diff != "" {
		t.Errorf("fallback (-want +got):\n%s", diff)
	}

	for _, s := range job.Statuses() {
		if d := query.Describe(s); d.Label != string(s) || d.Description == "Status unknown" {
			t.Errorf("Describe(%s)=%+v", s, d)
		}
	}
}

func Test_FormatDate(t *testing.T) {
	t.Parallel()

	if got, want := query.FormatDate("2024-03-07"), "Mar 7, 2024"; got != want {
		t.Errorf("FormatDate=%q, want=%q", got, want)
	}

	if got, want := query.FormatDate("someday"), "someday"; got != want {
		t.Errorf("FormatDate=%q, want=%q", got, want)
	}
}

func Test_RelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 30, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		date string
		want string
	}{
		{date: "2024-06-30", want: "Today"},
		{date: "2024-06-29", want: "Yesterday"},
		{date: "2024-06-26", want: "4 days ago"},
		{date: "2024-06-23", want: "1 week ago"},
		{date: "2024-06-10", want: "2 weeks ago"},
		{date: "2024-05-20", want: "1 month ago"},
		{date: "2024-01-01", want: "6 months ago"},
		{date: "2022-06-01", want: "2 years ago"},
		{date: "2024-07-04", want: "Upcoming"},
		{date: "garbage", want: ""},
	}

	for _, tt := range tests {
		if got := query.RelativeTime(tt.date, now); got != tt.want {
			t.Errorf("RelativeTime(%q)=%q, want=%q", tt.date, got, tt.want)
		}
	}
}

func Test_RelativeTime_Counts_Days_In_Local_Calendar(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("UTC+9", 9*60*60)
	newYork := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name string
		now  time.Time
		date string
		want string
	}{
		{name: "EastMorning", now: time.Date(2024, time.June, 30, 8, 0, 0, 0, tokyo), date: "2024-06-30", want: "Today"},
		{name: "WestEvening", now: time.Date(2024, time.June, 30, 21, 0, 0, 0, newYork), date: "2024-06-30", want: "Today"},
		{name: "WestEveningYesterday", now: time.Date(2024, time.June, 30, 21, 0, 0, 0, newYork), date: "2024-06-29", want: "Yesterday"},
		{name: "EastMorningTomorrow", now: time.Date(2024, time.June, 30, 8, 0, 0, 0, tokyo), date: "2024-07-01", want: "Upcoming"},
		{name: "TimestampInOtherZone", now: time.Date(2024, time.June, 30, 8, 0, 0, 0, tokyo), date: "2024-06-29T23:30:00Z", want: "Today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := query.RelativeTime(tt.date, tt.now); got != tt.want {
				t.Errorf("RelativeTime(%q)=%q, want=%q", tt.date, got, tt.want)
			}
		})
	}
}

func Test_RelativeTime_Of_Today_Is_Today_At_Any_Hour(t *testing.T) {
	t.Parallel()

	for _, offset := range []int{-11, -5, 0, 5, 9, 14} {
		zone := time.FixedZone("fixed", offset*60*60)

		for hour := range 24 {
			now := time.Date(2024, time.March, 10, hour, 30, 0, 0, zone)

			if got := query.RelativeTime(job.Today(now), now); got != "Today" {
				t.Fatalf("offset=%d hour=%d: RelativeTime=%q, want=Today", offset, hour, got)
			}
		}
	}
}
