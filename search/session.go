package search

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/typeahead"
	"github.com/google/uuid"
)

// Update describes a change to the records visible in a Session.
type Update struct {
	Token   Token
	Query   string
	State   State
	Records []typeahead.Record
}

// UpdateFunc receives session updates in the order they were committed.
// Calls are never concurrent. The function may call any Session method.
type UpdateFunc func(Update)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebounce sets the quiet period before a query runs.
// Defaults to DefaultDebounce if not specified.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) {
		s.interval = d
	}
}

// WithLogger sets the logger for state transitions and discarded responses.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUpdateFunc registers fn to receive every committed update.
func WithUpdateFunc(fn UpdateFunc) SessionOption {
	return func(s *Session) {
		s.onUpdate = fn
	}
}

// Session is the search state machine for a single input field.
//
// Input feeds keystrokes through a Debouncer. When input settles the
// session resolves local matches synchronously and publishes them, then
// consults remote resolvers in the background. Every keystroke advances the
// session's Fence and cancels the previous cycle, so a late response for an
// older query is never published.
type Session struct {
	id        string
	engine    *Engine
	interval  time.Duration
	logger    *slog.Logger
	onUpdate  UpdateFunc
	debouncer *Debouncer
	fence     Fence

	// emitMu is held by the goroutine delivering pending updates.
	emitMu sync.Mutex

	mu        sync.Mutex
	state     State
	input     string
	query     string
	results   []typeahead.Record
	cancel    context.CancelFunc
	selection typeahead.SelectionSet
	closed    bool
	pending   []Update

	wg sync.WaitGroup
}

// NewSession returns an idle Session backed by engine.
func NewSession(engine *Engine, opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		engine: engine,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.debouncer = NewDebouncer(s.interval, s.settle, s.clear)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Input records the current contents of the input field. It returns the
// token issued for the edit; every update caused by this input carries a
// greater token, except the idle update for blank input which carries the
// same one. A closed session ignores input and returns zero.
func (s *Session) Input(text string) Token {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.input = text
	token := s.fence.Advance()
	s.cancelCycleLocked()
	if !typeahead.IsBlank(text) {
		s.setStateLocked(StateDebouncing)
	}
	s.mu.Unlock()

	s.debouncer.Push(text)
	return token
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the query whose records are currently visible.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns a copy of the currently visible records.
func (s *Session) Results() []typeahead.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// Select adds id to the session's selection.
// Returns false if id was already selected.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Add(id)
}

// Deselect removes id from the session's selection.
// Returns false if id was not selected.
func (s *Session) Deselect(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Remove(id)
}

// Selection returns the selected ids in the order they were added.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// Wait blocks until every remote lookup started so far has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close stops the debouncer and cancels in-flight work. Later input is
// ignored. Close does not wait for remote lookups; use Wait for that.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.fence.Advance()
	s.cancelCycleLocked()
	s.mu.Unlock()

	s.debouncer.Stop()
}

// clear handles blank input: visible records are dropped and the session
// returns to idle without issuing a query.
func (s *Session) clear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	token, _ := s.fence.Current()
	s.results = nil
	s.query = ""
	s.setStateLocked(StateIdle)
	s.publishLocked(Update{Token: token, State: StateIdle})
	s.mu.Unlock()

	s.flush()
}

// settle starts a search cycle for query once input has been idle.
func (s *Session) settle(query string) {
	s.mu.Lock()
	// The debouncer cannot retract an emission that already fired, so input
	// that changed meanwhile is detected here.
	if s.closed || query != s.input {
		s.mu.Unlock()
		return
	}

	token := s.fence.Begin(query)
	local := s.engine.ResolveLocalOnly(query)
	s.query = query
	s.results = local
	s.setStateLocked(StateLocalResolved)
	s.publishLocked(Update{Token: token, Query: query, State: StateLocalResolved, Records: local})

	s.setStateLocked(StateRemoteChecking)
	if !s.engine.needsRemote(local) {
		s.setStateLocked(StateSettled)
		s.publishLocked(Update{Token: token, Query: query, State: StateSettled, Records: local})
		s.mu.Unlock()
		s.flush()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()
	s.flush()

	go s.resolveRemote(ctx, token, query, local)
}

func (s *Session) resolveRemote(ctx context.Context, token Token, query string, local []typeahead.Record) {
	defer s.wg.Done()

	remote := s.engine.resolveRemote(ctx, query, func(state State) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.fence.IsCurrent(token) {
			s.setStateLocked(state)
		}
	})
	merged := typeahead.Merge(local, remote, s.engine.Cap())

	s.mu.Lock()
	if !s.fence.IsCurrent(token) {
		s.mu.Unlock()
		s.logger.Debug("stale response discarded",
			"session", s.id,
			"token", uint64(token),
			"query", query,
			"count", len(remote),
		)
		return
	}
	s.results = merged
	s.cancelCycleLocked()
	s.setStateLocked(StateSettled)
	s.publishLocked(Update{Token: token, Query: query, State: StateSettled, Records: merged})
	s.mu.Unlock()

	s.flush()
}

// cancelCycleLocked aborts the in-flight remote lookup, if any.
func (s *Session) cancelCycleLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) setStateLocked(state State) {
	if s.state == state {
		return
	}
	s.logger.Debug("search state",
		"session", s.id,
		"from", s.state.String(),
		"to", state.String(),
	)
	s.state = state
}

// publishLocked queues upd for delivery. It must be called with mu held,
// followed by flush once mu is released.
func (s *Session) publishLocked(upd Update) {
	if s.onUpdate != nil {
		s.pending = append(s.pending, upd)
	}
}

// flush delivers queued updates in order. If another goroutine is already
// delivering, flush returns at once and that goroutine picks up the queue;
// emitMu is only released while mu is held and the queue is empty, so no
// update is left behind.
func (s *Session) flush() {
	if !s.emitMu.TryLock() {
		return
	}
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		if len(batch) == 0 {
			s.emitMu.Unlock()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		for _, upd := range batch {
			s.onUpdate(upd)
		}
	}
}
