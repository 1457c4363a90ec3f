package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/store"
)

// ImportCmd returns the import command.
func ImportCmd(s *session) *Command {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "Validate the file without changing stored data")

	return &Command{
		Flags: fs,
		Usage: "import <file|-> [flags]",
		Short: "Replace all applications with a JSON file",
		Long: `Replace all applications with the ones in a JSON export file.

The file must hold a JSON array. Entries without company name, job title,
status and application date are skipped. Every imported application gets a
new ID. Existing applications are discarded. Use - to read from stdin.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execImport(ctx, o, s, args, *dryRun)
		},
	}
}

func execImport(ctx context.Context, o *IO, s *session, args []string, dryRun bool) error {
	if len(args) == 0 {
		return errFileRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}

	r, closeFn, err := openImport(o, s, args[0])
	if err != nil {
		return err
	}

	defer closeFn()

	st, err := s.Store(ctx)
	if err != nil {
		return err
	}

	target := st
	if dryRun {
		target, err = store.Open(ctx, store.NewMemoryBackend(), store.Options{Now: s.now, Logger: s.log})
		if err != nil {
			return err
		}
	}

	res, err := target.Import(ctx, r)
	if err != nil {
		return err
	}

	if dryRun {
		o.Printf("Would import %d applications, replacing %d\n", res.Imported, st.Len())
	} else {
		o.Printf("Imported %d applications\n", res.Imported)
	}

	if res.Skipped > 0 {
		o.Printf("Skipped %d entries without company, title, status or date\n", res.Skipped)
	}

	return nil
}

func openImport(o *IO, s *session, name string) (io.Reader, func(), error) {
	if name == "-" {
		return o.In(), func() {}, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cfg.EffectiveCwd, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", store.ErrImportRead, err)
	}

	return f, func() { _ = f.Close() }, nil
}
