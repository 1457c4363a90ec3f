package job

import (
	"errors"
	"fmt"
	"strings"
)

// Error variables for job and config operations.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataDirEmpty       = errors.New("data-dir cannot be empty")
	ErrStorageKeyEmpty    = errors.New("storage_key cannot be empty")
	ErrInvalidBackend     = errors.New("invalid backend (must be file or sqlite)")
	ErrInvalidColor       = errors.New("invalid color mode (must be auto, always or never)")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrIDGenerationFailed = errors.New("no unique id after repeated attempts")
	ErrIDRequired         = errors.New("application ID is required")
	ErrNotFound           = errors.New("application not found")
	ErrStatusEmpty        = errors.New("status cannot be empty")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidForm        = errors.New("invalid application")
)

// InvalidStatusError reports a status name outside the closed set.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	names := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		names = append(names, string(s))
	}

	return fmt.Sprintf("%s: %q (want %s)", ErrInvalidStatus, e.Value, strings.Join(names, "|"))
}

// Unwrap allows errors.Is(err, ErrInvalidStatus).
func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}
