// Package store owns the working WorkoutPlan document and its durable copy.
//
// The Store is the single writer: callers read clones through Snapshot and
// submit whole documents through Update, Reset or Apply. Storage failures are
// logged and absorbed here; they never reach the caller.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/workoutplan/internal/metrics"
	"github.com/claude/workoutplan/internal/models"
	"github.com/claude/workoutplan/internal/storage"
)

// DefaultKey is the storage key of the durable copy.
const DefaultKey = "workoutPlan"

// ErrNotInitialized is returned by Apply before Initialize has run.
var ErrNotInitialized = errors.New("store not initialized")

type Store struct {
	mu      sync.RWMutex
	kv      storage.KV
	key     string
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newUser func() models.UserProfile

	defaultPlan *models.WorkoutPlan
	plan        *models.WorkoutPlan
	loading     bool
	synced      bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithMetrics records durable write outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock overrides time.Now, used for new user ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithUserTemplate sets the profile AddUser starts from.
func WithUserTemplate(fn func() models.UserProfile) Option {
	return func(s *Store) { s.newUser = fn }
}

// New creates a Store backed by kv. The store reports Loading until
// Initialize completes.
func New(kv storage.KV, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     DefaultKey,
		log:     log,
		now:     time.Now,
		newUser: func() models.UserProfile { return models.UserProfile{} },
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the durable copy. When none exists it is seeded with
// defaultPlan; when it cannot be read or decoded the store falls back to
// defaultPlan and leaves the durable copy as it is until the next write.
func (s *Store) Initialize(ctx context.Context, defaultPlan *models.WorkoutPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	defer func() { s.loading = false }()

	s.defaultPlan = defaultPlan.Clone()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("reading stored plan failed, using default", "key", s.key, "error", err)
		s.plan = s.defaultPlan.Clone()
		s.synced = false
		return
	}
	if !ok || raw == "" {
		s.log.Info("no stored plan, seeding default", "key", s.key)
		s.plan = s.defaultPlan.Clone()
		s.write(ctx)
		return
	}

	plan, err := decodePlan(raw)
	if err != nil {
		s.log.Warn("stored plan is corrupt, using default", "key", s.key, "error", err)
		s.plan = s.defaultPlan.Clone()
		s.synced = false
		return
	}
	s.plan = plan
	s.synced = true
	s.log.Info("loaded stored plan", "key", s.key, "users", len(plan.Users))
}

func decodePlan(raw string) (*models.WorkoutPlan, error) {
	var p models.WorkoutPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	if len(p.Users) == 0 {
		return nil, errors.New("decoding plan: no users")
	}
	return &p, nil
}

// Update replaces the working document with plan and writes it through.
// A failed write is logged; the in-memory document is updated regardless.
func (s *Store) Update(ctx context.Context, plan *models.WorkoutPlan) {
	if plan == nil {
		s.log.Error("ignoring update with nil plan")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan.Clone()
	s.write(ctx)
}

// Reset discards all edits and restores the default document, in memory and
// on disk. Callers must confirm with the user first.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defaultPlan == nil {
		s.log.Error("reset before initialize ignored")
		return
	}
	s.plan = s.defaultPlan.Clone()
	s.write(ctx)
	s.log.Info("plan reset to default")
}

// Apply runs fn on a copy of the working document and, if fn succeeds,
// commits the copy exactly as Update would. The read-modify-write happens
// under the store lock.
func (s *Store) Apply(ctx context.Context, fn func(plan *models.WorkoutPlan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return ErrNotInitialized
	}
	next := s.plan.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.plan = next
	s.write(ctx)
	return nil
}

// Snapshot returns a copy of the working document, or nil before Initialize.
func (s *Store) Snapshot() *models.WorkoutPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

// Loading reports whether the store has not finished Initialize yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Synced reports whether the durable copy matches the working document.
func (s *Store) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// write persists s.plan. Caller holds s.mu.
func (s *Store) write(ctx context.Context) {
	data, err := json.Marshal(s.plan)
	if err == nil {
		err = s.kv.Set(ctx, s.key, string(data))
	}
	s.metrics.ObserveStorageWrite(err)
	if err != nil {
		s.synced = false
		s.log.Error("saving plan failed, keeping in-memory copy", "key", s.key, "error", err)
		return
	}
	s.synced = true
}
