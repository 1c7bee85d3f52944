package dialogue

import (
	"sync"
	"time"
)

// DefaultIdleTimeout is how long an untouched conversation survives.
const DefaultIdleTimeout = 30 * time.Minute

// Key identifies a conversation.
type Key struct {
	UserID int64
	ChatID int64
}

type record struct {
	state   State
	touched time.Time
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// Store holds at most one State per Key. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	states map[Key]record
	locks  map[Key]*keyLock
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIdleTimeout expires entries not written for d. Zero disables expiry.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// NewStore creates an empty store with the default idle timeout.
func NewStore(opts ...Option) *Store {
	s := &Store{
		states: make(map[Key]record),
		locks:  make(map[Key]*keyLock),
		ttl:    DefaultIdleTimeout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// live returns the entry for key, dropping it if it has expired.
// Callers hold s.mu.
func (s *Store) live(key Key) (State, bool) {
	rec, ok := s.states[key]
	if !ok {
		return nil, false
	}
	if s.expired(rec) {
		delete(s.states, key)
		return nil, false
	}
	return rec.state, true
}

func (s *Store) expired(rec record) bool {
	return s.ttl > 0 && s.now().Sub(rec.touched) >= s.ttl
}

// Get returns the state for key. Absent or expired means idle.
func (s *Store) Get(key Key) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(key)
}

// Set stores state for key and returns the previous state, if any.
func (s *Store) Set(key Key, state State) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.live(key)
	s.states[key] = record{state: state, touched: s.now()}
	return prev, had
}

// Remove clears key and returns the previous state, if any.
func (s *Store) Remove(key Key) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.live(key)
	delete(s.states, key)
	return prev, had
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.states {
		if !s.expired(rec) {
			n++
		}
	}
	return n
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, rec := range s.states {
		if s.expired(rec) {
			delete(s.states, key)
			n++
		}
	}
	return n
}

// Lock acquires the lock for key and returns its release function. Holders
// of different keys never block each other. The lock entry is freed when
// its last holder or waiter is done.
func (s *Store) Lock(key Key) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			s.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, key)
			}
			s.mu.Unlock()
		})
	}
}

// lockCount returns the number of live lock entries.
func (s *Store) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
