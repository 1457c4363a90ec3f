package cli

import (
	"context"
	"fmt"
	"slices"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/query"
)

// LsCmd returns the ls command.
func LsCmd(s *session) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	search := fs.StringP("search", "s", "", "Only show company names or titles containing `text`")
	status := fs.String("status", "All", "Only show applications with `status`")
	order := fs.String("sort", string(query.OrderDate), "Sort by date or priority")
	limit := fs.IntP("limit", "n", 0, "Show at most `n` applications (0 for all)")

	return &Command{
		Flags:  fs,
		NoArgs: true,
		Usage:  "ls [flags]",
		Short:  "List applications",
		Long: `List applications, newest first.

Search matches company name or job title, ignoring case. Priority order puts
offers first, then interviews, open applications and rejections.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			p, err := lsParams(*search, *status, *order)
			if err != nil {
				return err
			}

			if *limit < 0 {
				return errInvalidLimit
			}

			return execLs(ctx, o, s, p, *limit)
		},
	}
}

func lsParams(search, status, order string) (query.Params, error) {
	st, err := job.ParseStatus(status, true)
	if err != nil {
		return query.Params{}, err
	}

	if !slices.Contains(query.Orders(), query.Order(order)) {
		return query.Params{}, fmt.Errorf("%w: %s", errInvalidOrder, order)
	}

	return query.Params{Search: search, Status: st, Order: query.Order(order)}, nil
}

func execLs(ctx context.Context, o *IO, s *session, p query.Params, limit int) error {
	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	list := query.Apply(st.All(), p)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	pal := s.palette()

	for _, app := range list {
		if !app.Status.IsValid() {
			o.Warn(fmt.Sprintf("%s has unknown status %q", app.ID, app.Status),
				"set one with: jt edit "+app.ID+" --status <status>")
		}

		o.Println(formatLine(pal, app))
	}

	return nil
}

// formatLine renders one application as a single list line.
func formatLine(pal palette, app job.Application) string {
	return fmt.Sprintf("%s  %-10s  %s - %s  %s",
		app.ID, app.ApplicationDate, pal.bold(app.CompanyName), app.JobTitle, pal.badge(app.Status))
}
