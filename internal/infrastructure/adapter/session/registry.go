package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
)

// DefaultIdleTTL is how long an untouched wizard session is kept
const DefaultIdleTTL = 30 * core.Minute

// Factory builds an unmounted wizard for flow on behalf of owner
type Factory func(flow entity.Flow, owner string) *wizard.Controller

// Session is one open wizard
type Session struct {
	ID         string
	Owner      string
	Flow       entity.Flow
	Controller *wizard.Controller
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry keeps the open wizard sessions. An owner has at most one
// session per flow; opening a new one drops the previous one.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	factory Factory
	clock   core.TimeProvider
	ttl     core.Duration
	logger  core.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

// NewRegistry creates an empty registry. A non-positive ttl uses DefaultIdleTTL.
func NewRegistry(factory Factory, clock core.TimeProvider, ttl core.Duration, logger core.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		sessions: map[string]*entry{},
		factory:  factory,
		clock:    clock,
		ttl:      ttl,
		logger:   logger.With(map[string]any{"component": "session_registry"}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Open creates and mounts a wizard. Reference lists that fail to load are
// reported by the session snapshot, not here.
func (r *Registry) Open(ctx context.Context, flow entity.Flow, owner string) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		Owner:      owner,
		Flow:       flow,
		Controller: r.factory(flow, owner),
	}

	if err := s.Controller.Mount(ctx); err != nil {
		r.logger.Warn("Wizard mounted with load errors", map[string]any{
			"session_id": s.ID,
			"error":      err.Error(),
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.sessions {
		if e.session.Owner == owner && e.session.Flow == flow {
			delete(r.sessions, id)
			r.logger.Debug("Replaced wizard session", map[string]any{"session_id": id})
		}
	}
	r.sessions[s.ID] = &entry{session: s, lastSeen: r.clock.Now()}
	r.logger.Info("Opened wizard session", map[string]any{
		"session_id": s.ID,
		"flow":       string(flow),
		"owner":      owner,
	})
	return s
}

// Get returns the owner's session and marks it used. Sessions of other
// owners are reported as missing.
func (r *Registry) Get(id, owner string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || e.session.Owner != owner {
		return nil, errs.ErrSessionNotFound
	}
	e.lastSeen = r.clock.Now()
	return e.session, nil
}

// Close drops the owner's session
func (r *Registry) Close(id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || e.session.Owner != owner {
		return errs.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of open sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle drops sessions unused for longer than the ttl. A session with
// a submission in flight is kept. It returns the number dropped.
func (r *Registry) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.sessions {
		if r.clock.Since(e.lastSeen) <= r.ttl {
			continue
		}
		if e.session.Controller.Snapshot().Submitting {
			continue
		}
		delete(r.sessions, id)
		evicted++
	}
	if evicted > 0 {
		r.logger.Info("Evicted idle wizard sessions", map[string]any{
			"evicted":   evicted,
			"remaining": len(r.sessions),
		})
	}
	return evicted
}

// Start runs EvictIdle every half ttl until Stop
func (r *Registry) Start() {
	r.startOnce.Do(r.run)
}

func (r *Registry) run() {
	r.mu.Lock()
	r.started = true
	r.mu.Unlock()

	ticks, stopTicker := r.clock.NewTicker(r.ttl / 2)
	go func() {
		defer close(r.done)
		defer stopTicker()
		for {
			select {
			case <-ticks:
				r.EvictIdle()
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop ends the eviction loop started by Start
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
		r.mu.Lock()
		started := r.started
		r.mu.Unlock()
		if started {
			<-r.done
		}
	})
}
