package cli

import (
	"context"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// AddCmd returns the add command.
func AddCmd(s *session) *Command {
	ff := newFormFlags("add")

	return &Command{
		Flags:  ff.fs,
		NoArgs: true,
		Usage:  "add [flags]",
		Short:  "Record a new application",
		Long: `Record a new application and print its ID.

Company and title are required. Status defaults to Applied and the date to
today. With -i every field is prompted for, using the flags as defaults.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execAdd(ctx, o, s, ff)
		},
	}
}

func execAdd(ctx context.Context, o *IO, s *session, ff *formFlags) error {
	defaults := job.Form{
		Status:          job.DefaultStatus,
		ApplicationDate: job.Today(s.now()),
	}

	form, err := ff.resolve(o, ff.merge(defaults))
	if err != nil {
		return err
	}

	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	app, err := st.Add(ctx, form)
	if err != nil {
		return err
	}

	o.Println(app.ID)

	return nil
}
