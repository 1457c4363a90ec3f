package store

import "errors"

// ErrPersist reports that a mutation could not be written to the backend.
// The in-memory collection is left as it was before the mutation.
var ErrPersist = errors.New("persist applications")

// ErrLoadParse reports a stored blob that is not a JSON array of
// applications. Open recovers from it by starting empty.
var ErrLoadParse = errors.New("stored applications are not valid JSON")

// ErrInvalidKey reports a storage key that cannot be used by a backend.
var ErrInvalidKey = errors.New("invalid storage key")

// Import errors. None of them change the collection.
var (
	// ErrImportRead reports that the import source could not be read.
	ErrImportRead = errors.New("error reading file")

	// ErrImportParse reports import data that is not valid JSON.
	ErrImportParse = errors.New("error parsing JSON file")

	// ErrImportFormat reports import data whose top-level value is not an array.
	ErrImportFormat = errors.New("invalid file format")

	// ErrNoValidRecords reports an array without a single entry carrying
	// companyName, jobTitle, status and applicationDate.
	ErrNoValidRecords = errors.New("no valid job data found in file")
)
