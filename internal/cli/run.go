package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// Run is the main entry point. Returns exit code.
//
// env is the process environment as a map; sigCh, when non-nil, cancels
// the running command on the first signal received.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	return run(stdin, out, errOut, args, env, sigCh, time.Now)
}

func run(
	stdin io.Reader,
	out, errOut io.Writer,
	args []string,
	env map[string]string,
	sigCh <-chan os.Signal,
	now func() time.Time,
) int {
	globals := flag.NewFlagSet("jt", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use config `file` instead of "+job.ConfigFileName)
	dataDir := globals.String("data-dir", "", "Store data in `dir`")
	backend := globals.String("backend", "", "Storage backend: file or sqlite")
	verbose := globals.BoolP("verbose", "v", false, "Log debug diagnostics to stderr")
	help := globals.BoolP("help", "h", false, "Show help")

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	err := globals.Parse(rest)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globals, nil)

		return 1
	}

	rest = globals.Args()

	if *help || len(rest) == 0 {
		printUsage(out, globals, allCommands(&session{}))

		return 0
	}

	input := job.LoadConfigInput{
		WorkDirOverride: *workDir,
		ConfigPath:      *configPath,
		BackendOverride: *backend,
		Env:             env,
	}

	if globals.Changed("data-dir") {
		input.DataDirOverride = dataDir
	}

	cfg, err := job.LoadConfig(input)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	log, err := newLogger(errOut, cfg.LogLevel, *verbose)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	defer func() { _ = log.Sync() }()

	sess := &session{cfg: cfg, log: log, now: now, env: env, stdout: out}
	defer sess.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	var cmd *Command

	for _, c := range allCommands(sess) {
		if c.Name() == rest[0] {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error: unknown command:", rest[0])
		printUsage(errOut, globals, nil)

		return 1
	}

	o := NewIO(stdin, out, errOut)

	code := cmd.Run(ctx, o, rest[1:])
	if code != 0 {
		return code
	}

	return o.Finish()
}

func allCommands(s *session) []*Command {
	return []*Command{
		AddCmd(s),
		LsCmd(s),
		ShowCmd(s),
		EditCmd(s),
		RmCmd(s),
		ImportCmd(s),
		ExportCmd(s),
		StatsCmd(s),
		PrintConfigCmd(s),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, cmds []*Command) {
	fprintln(w, "jt - track job applications from the command line")
	fprintln(w)
	fprintln(w, "Usage: jt [global flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	_, _ = io.WriteString(w, globals.FlagUsages())

	if len(cmds) == 0 {
		fprintln(w)
		fprintln(w, "Run 'jt --help' for the list of commands.")

		return
	}

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range cmds {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'jt <command> --help' for command flags.")
}
