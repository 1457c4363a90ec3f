package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// ExportContentType is the media type of exported files.
const ExportContentType = "application/json"

const exportIndent = "  "

// ExportFileName returns the suggested file name for an export taken at now.
// The date is the UTC calendar day.
func ExportFileName(now time.Time) string {
	return "job-applications-" + job.Today(now.UTC()) + ".json"
}

// Export writes the whole collection to w as an indented JSON array.
func (s *Store) Export(w io.Writer) error {
	data, err := encodeCollection(s.apps, exportIndent)
	if err != nil {
		return err
	}

	data = append(data, '\n')

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	return nil
}

// ImportResult reports what an import kept.
type ImportResult struct {
	Imported int // records now in the collection
	Skipped  int // array entries dropped for missing required fields
}

// importFields are the entries an imported record must carry.
var importFields = []string{"companyName", "jobTitle", "status", "applicationDate"}

// Import reads a JSON array of applications from r and replaces the whole
// collection with the entries that carry every required field.
//
// Imported records get fresh ids and a fresh UpdatedAt; a CreatedAt present
// in the input is kept. On any error the collection is unchanged. Errors
// wrap one of ErrImportRead, ErrImportParse, ErrImportFormat,
// ErrNoValidRecords or ErrPersist.
func (s *Store) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrImportRead, err)
	}

	var raw any

	err = json.Unmarshal(data, &raw)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrImportParse, err)
	}

	entries, ok := raw.([]any)
	if !ok {
		return ImportResult{}, ErrImportFormat
	}

	apps, err := s.normalizeImport(entries)
	if err != nil {
		return ImportResult{}, err
	}

	err = s.ReplaceAll(ctx, apps)
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Imported: len(apps), Skipped: len(entries) - len(apps)}
	s.log.Debug("imported applications",
		zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))

	return res, nil
}

func (s *Store) normalizeImport(entries []any) ([]job.Application, error) {
	apps := make([]job.Application, 0, len(entries))
	ids := make(map[string]bool, len(entries))

	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok || !hasImportFields(obj) {
			continue
		}

		id, err := job.NewID(func(id string) bool { return ids[id] })
		if err != nil {
			return nil, err
		}

		ids[id] = true

		app := job.Application{
			ID:              id,
			CompanyName:     looseString(obj["companyName"]),
			JobTitle:        looseString(obj["jobTitle"]),
			Status:          job.Status(looseString(obj["status"])),
			ApplicationDate: looseString(obj["applicationDate"]),
			Notes:           looseString(obj["notes"]),
		}

		if truthy(obj["createdAt"]) {
			app.CreatedAt = looseString(obj["createdAt"])
			app.UpdatedAt = s.stamp(app.CreatedAt)
		} else {
			app.CreatedAt = job.FormatTimestamp(s.now())
			app.UpdatedAt = app.CreatedAt
		}

		apps = append(apps, app)
	}

	if len(apps) == 0 {
		return nil, ErrNoValidRecords
	}

	return apps, nil
}

func hasImportFields(obj map[string]any) bool {
	for _, name := range importFields {
		if !truthy(obj[name]) {
			return false
		}
	}

	return true
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	default:
		return true
	}
}

// looseString renders a decoded JSON value as the string a loosely typed
// record field would hold. Missing values become "".
func looseString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}

		return string(b)
	}
}
