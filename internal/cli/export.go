package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/fs"
	"github.com/calvinalkan/jobtrack/internal/store"
)

const exportFilePerms = 0o644

// ExportCmd returns the export command.
func ExportCmd(s *session) *Command {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	output := flags.StringP("output", "o", "", "Write to `file` (- for stdout)")
	force := flags.BoolP("force", "f", false, "Overwrite an existing file")

	return &Command{
		Flags:  flags,
		NoArgs: true,
		Usage:  "export [flags]",
		Short:  "Write all applications to a JSON file",
		Long: `Write all applications to a JSON file that import accepts.

Without -o the file is job-applications-<today>.json in the working directory.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execExport(ctx, o, s, fs.NewReal(), *output, *force)
		},
	}
}

func execExport(ctx context.Context, o *IO, s *session, fsys fs.FS, output string, force bool) error {
	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	if output == "-" {
		return st.Export(o.Out())
	}

	if output == "" {
		output = store.ExportFileName(s.now())
	}

	path := output
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cfg.EffectiveCwd, path)
	}

	if !force {
		exists, err := fsys.Exists(path)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}

		if exists {
			return fmt.Errorf("%w: %s", errFileExists, output)
		}
	}

	var buf bytes.Buffer

	err = st.Export(&buf)
	if err != nil {
		return err
	}

	err = fsys.WriteFileAtomic(path, buf.Bytes(), exportFilePerms)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	o.Printf("Exported %d applications to %s\n", st.Len(), output)

	return nil
}
