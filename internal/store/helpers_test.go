package store_test

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/store"
	"github.com/calvinalkan/jobtrack/internal/testutil"
)

// openStore opens a store over backend with a deterministic clock.
func openStore(t *testing.T, backend store.Backend, clock *testutil.Clock) *store.Store {
	t.Helper()

	s, err := store.Open(t.Context(), backend, store.Options{
		Now:    clock.Now,
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	return s
}

func form(company, title string) job.Form {
	return job.Form{
		CompanyName:     company,
		JobTitle:        title,
		Status:          job.StatusApplied,
		ApplicationDate: "2024-01-01",
	}
}

func mustAdd(t *testing.T, s *store.Store, f job.Form) job.Application {
	t.Helper()

	app, err := s.Add(t.Context(), f)
	if err != nil {
		t.Fatalf("add %s: %v", f.CompanyName, err)
	}

	return app
}
