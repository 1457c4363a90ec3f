package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// EditCmd returns the edit command.
func EditCmd(s *session) *Command {
	ff := newFormFlags("edit")

	return &Command{
		Flags: ff.fs,
		Usage: "edit <id> [flags]",
		Short: "Change fields of an application",
		Long: `Change fields of an application. Only the given flags are changed.
With -i every field is prompted for, pre-filled with its current value.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execEdit(ctx, o, s, ff, args)
		},
	}
}

func execEdit(ctx context.Context, o *IO, s *session, ff *formFlags, args []string) error {
	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	app, err := lookup(st, args)
	if err != nil {
		return err
	}

	if ff.fs.NFlag() == 0 {
		return errNothingToChange
	}

	form, err := ff.resolve(o, ff.merge(app.Form()))
	if err != nil {
		return err
	}

	_, found, err := st.Update(ctx, app.ID, form)
	if err != nil {
		return err
	}

	if !found {
		return fmt.Errorf("%w: %s", job.ErrNotFound, app.ID)
	}

	o.Println(app.ID)

	return nil
}
