package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/calvinalkan/jobtrack/internal/fs"
	"github.com/calvinalkan/jobtrack/internal/job"
	"github.com/calvinalkan/jobtrack/internal/store"
)

// session carries what commands need besides their own flags.
// The store is opened on first use so commands like print-config never
// touch the data directory.
type session struct {
	cfg    job.Config
	log    *zap.Logger
	now    func() time.Time
	env    map[string]string
	stdout io.Writer

	store *store.Store
}

// Store opens the configured backend and loads the collection.
func (s *session) Store(ctx context.Context) (*store.Store, error) {
	if s.store != nil {
		return s.store, nil
	}

	backend, err := s.openBackend(ctx)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, backend, store.Options{
		Key:    s.cfg.StorageKey,
		Now:    s.now,
		Logger: s.log.Named("store"),
	})
	if err != nil {
		_ = backend.Close()

		return nil, err
	}

	st.Subscribe(s.logChange)
	s.store = st

	return st, nil
}

func (s *session) openBackend(ctx context.Context) (store.Backend, error) {
	switch s.cfg.Backend {
	case job.BackendSQLite:
		path := filepath.Join(s.cfg.DataDirAbs, store.SQLiteFileName)

		b, err := store.OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open data store: %w", err)
		}

		return b, nil
	case job.BackendFile:
		return store.NewFileBackend(fs.NewReal(), s.cfg.DataDirAbs), nil
	default:
		return nil, fmt.Errorf("%w: %s", job.ErrInvalidBackend, s.cfg.Backend)
	}
}

// logChange is a store observer reporting every committed-to-be change.
func (s *session) logChange(_ context.Context, c store.Change) error {
	s.log.Info("applications changed",
		zap.String("op", string(c.Op)),
		zap.String("id", c.ID),
		zap.Int("count", len(c.Apps)))

	return nil
}

func (s *session) palette() palette {
	return newPalette(s.cfg.Color, s.stdout, s.env)
}

func (s *session) close() {
	if s.store == nil {
		return
	}

	err := s.store.Close()
	if err != nil {
		s.log.Warn("close data store", zap.Error(err))
	}
}

// lookup returns the application with id or an ErrNotFound error.
func lookup(st *store.Store, args []string) (job.Application, error) {
	if len(args) == 0 {
		return job.Application{}, job.ErrIDRequired
	}

	app, ok := st.Get(args[0])
	if !ok {
		return job.Application{}, fmt.Errorf("%w: %s", job.ErrNotFound, args[0])
	}

	return app, nil
}
