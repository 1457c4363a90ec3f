package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one jt subcommand: its flags, help text and the function that
// runs it.
type Command struct {
	// Flags holds the subcommand's own flags. Global flags are parsed by Run
	// before the subcommand is chosen.
	Flags *flag.FlagSet

	// Usage starts with the subcommand name, e.g. "rm [flags] <id>".
	Usage string

	// Short appears next to Usage in the command list.
	Short string

	// Long is printed by "jt <command> --help". Short is used when empty.
	Long string

	// NoArgs rejects positional arguments before Exec is called.
	NoArgs bool

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine formats the command for the "Commands:" section.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-26s %s", c.Usage, c.Short)
}

// PrintHelp writes the usage line, description and flags.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: jt", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", c.Flags.FlagUsages())
}

// Run parses args and calls Exec, returning the process exit code. Errors
// are printed here; a flag error is followed by the command help on stderr.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o.Stderr())

		return 1
	}

	rest := c.Flags.Args()
	if c.NoArgs && len(rest) > 0 {
		o.ErrPrintln("error:", fmt.Errorf("%w: %v", errTooManyArgs, rest))

		return 1
	}

	if err := c.Exec(ctx, o, rest); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
