package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/query"
)

// StatsCmd returns the stats command.
func StatsCmd(s *session) *Command {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	search := fs.StringP("search", "s", "", "Only count company names or titles containing `text`")

	return &Command{
		Flags:  fs,
		NoArgs: true,
		Usage:  "stats [flags]",
		Short:  "Count applications per status",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			st, err := s.Store(ctx)
			if err != nil {
				return err
			}

			list := query.Search(st.All(), *search)
			pal := s.palette()

			o.Printf("%-16s %d\n", "Total", query.CountByStatus(list, job.StatusAll))

			known := 0

			for _, status := range job.Statuses() {
				n := query.CountByStatus(list, status)
				known += n

				d := query.Describe(status)
				o.Printf("%s %s%*s %d\n", d.Icon, pal.paint(d.Color, d.Label), 13-len(d.Label), "", n)
			}

			if other := len(list) - known; other > 0 {
				o.Printf("%-16s %d\n", "Other", other)
			}

			return nil
		},
	}
}
