// Package store owns the collection of job applications and keeps it
// persisted in a single backend key.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// DefaultKey is the storage key used when [Options.Key] is empty.
const DefaultKey = "jobApplications"

// Op names the kind of mutation published to observers.
type Op string

// Mutation kinds.
const (
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReplace Op = "replace"
)

// Change describes a pending mutation. Apps is the full collection as it
// will be once the mutation commits; observers must not modify it.
type Change struct {
	Op   Op
	ID   string // affected record, empty for OpReplace
	Apps []job.Application
}

// Observer is notified of every mutation before it commits.
// Returning an error aborts the mutation.
type Observer func(ctx context.Context, change Change) error

// Options configures [Open].
type Options struct {
	// Key is the backend key holding the collection. Defaults to DefaultKey.
	Key string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives load and persistence diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Store is the single owner of the application collection.
//
// Every mutation is published to the subscribed observers, the first of
// which is the persister installed by [Open]. A mutation commits only when
// all observers accept it, so a failed write leaves the collection as it was.
//
// A Store is not safe for concurrent use.
type Store struct {
	backend Backend
	key     string
	now     func() time.Time
	log     *zap.Logger

	apps      []job.Application
	observers []subscription
	nextSubID int
}

type subscription struct {
	id int
	fn Observer
}

// Open creates a Store over backend and loads the persisted collection.
//
// Loading never fails: a missing key, a read error or unparsable data all
// start with an empty collection, and the cause is logged as a warning.
func Open(ctx context.Context, backend Backend, opts Options) (*Store, error) {
	if ctx == nil {
		return nil, errors.New("open store: context is nil")
	}

	if backend == nil {
		return nil, errors.New("open store: backend is nil")
	}

	s := &Store{
		backend: backend,
		key:     opts.Key,
		now:     opts.Now,
		log:     opts.Logger,
		apps:    []job.Application{},
	}

	if s.key == "" {
		s.key = DefaultKey
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.load(ctx)
	s.Subscribe(s.persist)

	return s, nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Key returns the backend key holding the collection.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) load(ctx context.Context) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("cannot read stored applications, starting empty",
			zap.String("key", s.key), zap.Error(err))

		return
	}

	if !ok {
		s.log.Debug("no stored applications", zap.String("key", s.key))

		return
	}

	apps, dropped, err := decodeCollection(data)
	if err != nil {
		s.log.Warn("stored applications are unreadable, starting empty",
			zap.String("key", s.key), zap.Error(fmt.Errorf("%w: %w", ErrLoadParse, err)))

		return
	}

	if dropped > 0 {
		s.log.Warn("ignored stored entries that are not objects",
			zap.String("key", s.key), zap.Int("dropped", dropped))
	}

	s.apps = apps
	s.log.Debug("loaded applications", zap.String("key", s.key), zap.Int("count", len(apps)))
}

// persist is the observer that writes the full collection to the backend.
func (s *Store) persist(ctx context.Context, change Change) error {
	data, err := encodeCollection(change.Apps, "")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	err = s.backend.Put(ctx, s.key, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.log.Debug("persisted applications",
		zap.String("key", s.key),
		zap.String("op", string(change.Op)),
		zap.Int("count", len(change.Apps)))

	return nil
}

// Subscribe registers fn for all future mutations. Observers run in
// subscription order. The returned func removes the subscription.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

func (s *Store) commit(ctx context.Context, change Change) error {
	for _, sub := range s.observers {
		err := sub.fn(ctx, change)
		if err != nil {
			return fmt.Errorf("%s: %w", change.Op, err)
		}
	}

	s.apps = change.Apps

	return nil
}

// All returns a copy of the collection in storage order.
func (s *Store) All() []job.Application {
	return slices.Clone(s.apps)
}

// Len returns the number of applications.
func (s *Store) Len() int {
	return len(s.apps)
}

// Get returns the application with the given id.
func (s *Store) Get(id string) (job.Application, bool) {
	idx := s.index(id)
	if idx < 0 {
		return job.Application{}, false
	}

	return s.apps[idx], true
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.apps, func(a job.Application) bool { return a.ID == id })
}

func (s *Store) has(id string) bool {
	return s.index(id) >= 0
}

// Add creates an application from form with a fresh id and timestamps.
func (s *Store) Add(ctx context.Context, form job.Form) (job.Application, error) {
	id, err := job.NewID(s.has)
	if err != nil {
		return job.Application{}, err
	}

	now := job.FormatTimestamp(s.now())

	app := job.Application{ID: id, CreatedAt: now, UpdatedAt: now}
	app.Apply(form)

	next := append(slices.Clone(s.apps), app)

	err = s.commit(ctx, Change{Op: OpAdd, ID: id, Apps: next})
	if err != nil {
		return job.Application{}, err
	}

	return app, nil
}

// Update replaces the editable fields of the application with the given id
// and refreshes its UpdatedAt. found is false, and nothing changes, when no
// application has that id.
func (s *Store) Update(ctx context.Context, id string, form job.Form) (app job.Application, found bool, err error) {
	idx := s.index(id)
	if idx < 0 {
		return job.Application{}, false, nil
	}

	updated := s.apps[idx]
	updated.Apply(form)
	updated.UpdatedAt = s.stamp(updated.CreatedAt, updated.UpdatedAt)

	next := slices.Clone(s.apps)
	next[idx] = updated

	err = s.commit(ctx, Change{Op: OpUpdate, ID: id, Apps: next})
	if err != nil {
		return job.Application{}, true, err
	}

	return updated, true, nil
}

// Delete removes the application with the given id. found is false, and
// nothing changes, when no application has that id.
func (s *Store) Delete(ctx context.Context, id string) (found bool, err error) {
	idx := s.index(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.apps), idx, idx+1)

	err = s.commit(ctx, Change{Op: OpDelete, ID: id, Apps: next})
	if err != nil {
		return true, err
	}

	return true, nil
}

// ReplaceAll discards the collection and substitutes apps.
func (s *Store) ReplaceAll(ctx context.Context, apps []job.Application) error {
	next := slices.Clone(apps)
	if next == nil {
		next = []job.Application{}
	}

	return s.commit(ctx, Change{Op: OpReplace, Apps: next})
}

// stamp returns the current timestamp, raised to the latest of floors so
// UpdatedAt never moves backwards or below CreatedAt when the clock does.
func (s *Store) stamp(floors ...string) string {
	now := s.now().UTC()

	for _, f := range floors {
		t, err := job.ParseTimestamp(f)
		if err == nil && t.After(now) {
			now = t
		}
	}

	return job.FormatTimestamp(now)
}
