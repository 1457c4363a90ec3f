package cli

import (
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// formFlags are the field flags shared by add and edit.
type formFlags struct {
	fs          *flag.FlagSet
	company     *string
	title       *string
	status      *string
	date        *string
	notes       *string
	interactive *bool
}

func newFormFlags(name string) *formFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	return &formFlags{
		fs:          fs,
		company:     fs.String("company", "", "Company name"),
		title:       fs.String("title", "", "Job title"),
		status:      fs.String("status", "", "Status: Applied, Interviewing, Offer or Rejected"),
		date:        fs.String("date", "", "Application date (YYYY-MM-DD)"),
		notes:       fs.String("notes", "", "Free-form notes"),
		interactive: fs.BoolP("interactive", "i", false, "Prompt for each field"),
	}
}

// merge overlays the flags that were set on base.
func (ff *formFlags) merge(base job.Form) job.Form {
	if ff.fs.Changed("company") {
		base.CompanyName = *ff.company
	}

	if ff.fs.Changed("title") {
		base.JobTitle = *ff.title
	}

	if ff.fs.Changed("status") {
		base.Status = job.Status(*ff.status)
	}

	if ff.fs.Changed("date") {
		base.ApplicationDate = *ff.date
	}

	if ff.fs.Changed("notes") {
		base.Notes = *ff.notes
	}

	return base
}

// resolve fills f from prompts when -i was given, then normalizes the
// status spelling and validates the result.
func (ff *formFlags) resolve(o *IO, f job.Form) (job.Form, error) {
	if *ff.interactive {
		var err error

		f, err = promptForm(newPrompter(o.In(), o.ErrOut()), f)
		if err != nil {
			return job.Form{}, err
		}
	}

	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.JobTitle = strings.TrimSpace(f.JobTitle)
	f.ApplicationDate = strings.TrimSpace(f.ApplicationDate)

	if f.Status != "" {
		status, err := job.ParseStatus(string(f.Status), false)
		if err != nil {
			return job.Form{}, err
		}

		f.Status = status
	}

	err := job.ValidateForm(&f)
	if err != nil {
		return job.Form{}, err
	}

	return f, nil
}

func promptForm(p prompter, f job.Form) (job.Form, error) {
	defer func() { _ = p.Close() }()

	fields := []struct {
		label string
		value *string
	}{
		{"Company", &f.CompanyName},
		{"Job title", &f.JobTitle},
		{"Status", (*string)(&f.Status)},
		{"Application date", &f.ApplicationDate},
		{"Notes", &f.Notes},
	}

	for _, field := range fields {
		answer, err := p.Prompt(field.label, *field.value)
		if err != nil {
			return job.Form{}, err
		}

		*field.value = answer
	}

	return f, nil
}
