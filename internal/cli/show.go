package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/query"
)

// ShowCmd returns the show command.
func ShowCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show application details",
		Long:  "Display every field of an application.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execShow(ctx, o, s, args)
		},
	}
}

func execShow(ctx context.Context, o *IO, s *session, args []string) error {
	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	app, err := lookup(st, args)
	if err != nil {
		return err
	}

	pal := s.palette()
	d := query.Describe(app.Status)

	if !app.Status.IsValid() {
		o.Warn("unknown status "+string(app.Status), "set one with: jt edit "+app.ID+" --status <status>")
	}

	o.Println(pal.bold(app.CompanyName))
	o.Println(app.JobTitle)
	o.Println()
	o.Printf("id:       %s\n", app.ID)
	o.Printf("status:   %s (%s)\n", pal.badge(app.Status), d.Description)
	o.Printf("applied:  %s\n", appliedLine(app, s))

	if app.Notes != "" {
		o.Printf("notes:    %s\n", app.Notes)
	}

	o.Printf("created:  %s\n", app.CreatedAt)
	o.Printf("updated:  %s\n", app.UpdatedAt)

	return nil
}

func appliedLine(app job.Application, s *session) string {
	line := query.FormatDate(app.ApplicationDate)

	if rel := query.RelativeTime(app.ApplicationDate, s.now()); rel != "" {
		line += " (" + rel + ")"
	}

	return line
}
