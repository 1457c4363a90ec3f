package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// RmCmd returns the rm command.
func RmCmd(s *session) *Command {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Do not ask for confirmation")

	return &Command{
		Flags: fs,
		Usage: "rm <id> [flags]",
		Short: "Delete an application",
		Long:  "Delete an application after confirmation. Use -y to skip the prompt.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execRm(ctx, o, s, args, *yes)
		},
	}
}

func execRm(ctx context.Context, o *IO, s *session, args []string, yes bool) error {
	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	app, err := lookup(st, args)
	if err != nil {
		return err
	}

	if !yes {
		err = confirmDelete(o, app)
		if err != nil {
			return err
		}
	}

	found, err := st.Delete(ctx, app.ID)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("%w: %s", job.ErrNotFound, app.ID)
	}

	o.Println("Deleted", app.ID)

	return nil
}

func confirmDelete(o *IO, app job.Application) error {
	p := newPrompter(o.In(), o.ErrOut())
	defer func() { _ = p.Close() }()

	ok, err := confirm(p, fmt.Sprintf("Delete %s - %s?", app.CompanyName, app.JobTitle))
	if err != nil {
		return err
	}

	if !ok {
		return errAborted
	}

	return nil
}
