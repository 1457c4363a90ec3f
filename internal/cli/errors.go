package cli

import "errors"

var (
	errAborted         = errors.New("aborted")
	errNothingToChange = errors.New("nothing to change (use -i or a field flag)")
	errTooManyArgs     = errors.New("too many arguments")
	errFileRequired    = errors.New("file argument is required (use - for stdin)")
	errFileExists      = errors.New("file exists (use --force to overwrite)")
	errInvalidOrder    = errors.New("invalid sort order (must be date or priority)")
	errInvalidLimit    = errors.New("limit cannot be negative")
)
