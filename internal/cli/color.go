package cli

import (
	"io"
	"os"

	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/query"
)

// ANSI foreground codes per status colour family.
var ansiColors = map[string]string{
	"blue":    "34",
	"amber":   "33",
	"emerald": "32",
	"red":     "31",
	"slate":   "90",
}

// palette renders status badges, with ANSI colour when enabled.
type palette struct {
	enabled bool
}

// newPalette resolves the color mode for w. "auto" colours only terminals
// and honours NO_COLOR.
func newPalette(mode string, w io.Writer, env map[string]string) palette {
	switch mode {
	case job.ColorAlways:
		return palette{enabled: true}
	case job.ColorNever:
		return palette{}
	}

	if _, ok := env["NO_COLOR"]; ok {
		return palette{}
	}

	f, ok := w.(*os.File)

	return palette{enabled: ok && isTerminal(f.Fd())}
}

func (p palette) paint(color, s string) string {
	code, ok := ansiColors[color]
	if !p.enabled || !ok {
		return s
	}

	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// badge renders the icon and label of status.
func (p palette) badge(status job.Status) string {
	d := query.Describe(status)

	return d.Icon + " " + p.paint(d.Color, d.Label)
}

func (p palette) bold(s string) string {
	if !p.enabled {
		return s
	}

	return "\x1b[1m" + s + "\x1b[0m"
}
