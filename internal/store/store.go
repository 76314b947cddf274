package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// Listener observes committed changes. It runs while the store holds its
// write lock and must not dispatch back into the store.
type Listener func(next State, action Action)

// Recorder receives store telemetry.
type Recorder interface {
	ActionDispatched(name string)
	PersistFailed(key string)
}

type noopRecorder struct{}

func (noopRecorder) ActionDispatched(string) {}
func (noopRecorder) PersistFailed(string)    {}

// Store is the single owner of the marketplace state. Reads never block on
// writes; writes are applied one at a time in arrival order.
type Store struct {
	mu    sync.Mutex
	state atomic.Pointer[State]

	snapshots domain.SnapshotStore
	hasher    Hasher
	log       *slog.Logger
	recorder  Recorder
	now       func() time.Time
	newID     func(prefix string) string

	listeners  map[int]Listener
	listenerID int
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

func WithRecorder(r Recorder) Option { return func(s *Store) { s.recorder = r } }

func WithHasher(h Hasher) Option { return func(s *Store) { s.hasher = h } }

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithIDGenerator replaces the default prefix-uuid identifiers.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty store backed by snapshots. Call Load before use to
// restore persisted state and seed the administrator.
func New(snapshots domain.SnapshotStore, opts ...Option) *Store {
	s := &Store{
		snapshots: snapshots,
		hasher:    NewBcryptHasher(BcryptDefaultCost),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:  noopRecorder{},
		now:       time.Now,
		newID:     func(prefix string) string { return prefix + "-" + uuid.NewString() },
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(&State{})
	return s
}

// Snapshot returns a deep copy of the committed state.
func (s *Store) Snapshot() State {
	return s.state.Load().Clone()
}

// current returns the committed state without copying. Callers must treat
// the result as read-only.
func (s *Store) current() *State {
	return s.state.Load()
}

// Subscribe registers fn for every committed change and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.listenerID
	s.listenerID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Dispatch applies actions in order and commits the result as one update.
func (s *Store) Dispatch(ctx context.Context, actions ...Action) {
	s.transact(ctx, func(State) []Action { return actions })
}

// transact computes actions from the committed state and applies them while
// holding the write lock, so the read-check-write sequence is atomic.
func (s *Store) transact(ctx context.Context, plan func(cur State) []Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.state.Load()
	actions := plan(cur)
	if len(actions) == 0 {
		return cur
	}

	next := cur
	keys := make(map[string]struct{})
	for _, a := range actions {
		next = Reduce(next, a)
		for _, k := range a.keys() {
			keys[k] = struct{}{}
		}
		s.recorder.ActionDispatched(a.Name())
	}
	s.state.Store(&next)

	for _, k := range domain.SnapshotKeys {
		if _, ok := keys[k]; ok {
			s.persist(ctx, next, k)
		}
	}
	for _, a := range actions {
		for _, fn := range s.listeners {
			fn(next, a)
		}
	}
	return next
}

// persist writes one key. Failures are logged and never roll back the
// in-memory state. The write outlives cancellation of ctx because the change
// is already committed.
func (s *Store) persist(ctx context.Context, st State, key string) {
	if s.snapshots == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	raw, err := encodeKey(st, key)
	if err == nil {
		err = s.snapshots.Put(ctx, key, raw)
	}
	if err != nil {
		s.recorder.PersistFailed(key)
		s.log.ErrorContext(ctx, "persist state", "key", key, "error", err)
	}
}

func encodeKey(st State, key string) (json.RawMessage, error) {
	switch key {
	case domain.KeyUsers:
		return json.Marshal(nonNil(st.Users))
	case domain.KeySwapRequests:
		return json.Marshal(nonNil(st.SwapRequests))
	case domain.KeyRatings:
		return json.Marshal(nonNil(st.Ratings))
	case domain.KeyCurrentUser:
		return json.Marshal(st.CurrentUser)
	case domain.KeyAdminMessages:
		return json.Marshal(nonNil(st.AdminMessages))
	}
	return nil, fmt.Errorf("unknown snapshot key %q", key)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Load restores every persisted key and seeds the administrator account if
// no user with its email exists. It is meant to run once at startup.
func (s *Store) Load(ctx context.Context) error {
	var st State
	targets := map[string]any{
		domain.KeyUsers:         &st.Users,
		domain.KeySwapRequests:  &st.SwapRequests,
		domain.KeyRatings:       &st.Ratings,
		domain.KeyCurrentUser:   &st.CurrentUser,
		domain.KeyAdminMessages: &st.AdminMessages,
	}
	for _, key := range domain.SnapshotKeys {
		if s.snapshots == nil {
			break
		}
		raw, err := s.snapshots.Get(ctx, key)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		if err := json.Unmarshal(raw, targets[key]); err != nil {
			s.log.WarnContext(ctx, "discard unreadable snapshot", "key", key, "error", err)
		}
	}

	admin, err := s.seedAdmin()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	actions := []Action{
		SetUsers{Users: st.Users},
		SetSwapRequests{Requests: st.SwapRequests},
		SetRatings{Ratings: st.Ratings},
		SetAdminMessages{Messages: st.AdminMessages},
	}
	if st.CurrentUser != nil {
		actions = append(actions, SetCurrentUser{User: st.CurrentUser})
	}
	if _, exists := st.userByEmail(AdminEmail); !exists {
		actions = append(actions, AddUser{User: admin})
		s.log.InfoContext(ctx, "seeded administrator account", "email", AdminEmail)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var next State
	for _, a := range actions {
		next = Reduce(next, a)
	}
	// Only keep a restored session that still points at a known user.
	if next.CurrentUser != nil {
		if i := next.userIndex(next.CurrentUser.ID); i >= 0 {
			u := next.Users[i].Clone()
			next.CurrentUser = &u
		} else {
			next.CurrentUser = nil
		}
	}
	s.state.Store(&next)
	s.persist(ctx, next, domain.KeyUsers)
	return nil
}

// ResetDemoData wipes persisted and in-memory state and restores exactly the
// seeded administrator.
func (s *Store) ResetDemoData(ctx context.Context) error {
	admin, err := s.seedAdmin()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if s.snapshots != nil {
		if err := s.snapshots.Delete(context.WithoutCancel(ctx), domain.SnapshotKeys...); err != nil {
			s.recorder.PersistFailed("*")
			s.log.ErrorContext(ctx, "clear persisted state", "error", err)
		}
	}
	s.transact(ctx, func(State) []Action {
		return []Action{
			SetCurrentUser{User: nil},
			SetSwapRequests{Requests: nil},
			SetRatings{Ratings: nil},
			SetAdminMessages{Messages: nil},
			SetSearch{},
			SetUsers{Users: []domain.User{admin}},
		}
	})
	return nil
}
