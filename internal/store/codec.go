package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// encodeCollection renders apps as a JSON array. indent "" gives the
// compact persisted form. A nil slice encodes as [].
func encodeCollection(apps []job.Application, indent string) ([]byte, error) {
	if apps == nil {
		apps = []job.Application{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if indent != "" {
		enc.SetIndent("", indent)
	}

	err := enc.Encode(apps)
	if err != nil {
		return nil, fmt.Errorf("encode applications: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeCollection parses a persisted blob. Anything other than a JSON
// array is an error; "null" decodes as empty. Object elements are kept with
// loosely typed fields coerced to strings. Other elements cannot hold a
// record and are counted in dropped.
func decodeCollection(data []byte) (apps []job.Application, dropped int, err error) {
	var entries []any

	err = json.Unmarshal(data, &entries)
	if err != nil {
		return nil, 0, err
	}

	apps = make([]job.Application, 0, len(entries))

	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			dropped++

			continue
		}

		apps = append(apps, job.Application{
			ID:              looseString(obj["id"]),
			CompanyName:     looseString(obj["companyName"]),
			JobTitle:        looseString(obj["jobTitle"]),
			Status:          job.Status(looseString(obj["status"])),
			ApplicationDate: looseString(obj["applicationDate"]),
			Notes:           looseString(obj["notes"]),
			CreatedAt:       looseString(obj["createdAt"]),
			UpdatedAt:       looseString(obj["updatedAt"]),
		})
	}

	return apps, dropped, nil
}
