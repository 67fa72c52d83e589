package conversation

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore keeps sessions in process memory with per-call locking.
// Sessions idle past the timeout are lazily reset on access and reaped by a
// background sweep so the map cannot grow without bound.
type MemorySessionStore struct {
	systemPrompt string
	idleTimeout  time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewMemorySessionStore creates an in-memory store. sweepInterval <= 0
// disables the background sweep.
func NewMemorySessionStore(systemPrompt string, idleTimeout, sweepInterval time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		systemPrompt: systemPrompt,
		idleTimeout:  idleTimeout,
		now:          time.Now,
		sessions:     make(map[string]*sessionEntry),
		stop:         make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

// WithSession implements SessionStore.
func (s *MemorySessionStore) WithSession(ctx context.Context, callID string, fn func(sess *Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	entry, ok := s.sessions[callID]
	if !ok {
		entry = &sessionEntry{}
		s.sessions[callID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := s.now()
	if entry.session == nil || now.Sub(entry.session.LastActivity) > s.idleTimeout {
		entry.session = newSession(callID, s.systemPrompt, now)
	}
	entry.session.LastActivity = now

	return fn(entry.session)
}

// Close stops the background sweep.
func (s *MemorySessionStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemorySessionStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops sessions idle past the timeout. Entries whose per-call lock is
// held are busy and skipped until the next pass.
func (s *MemorySessionStore) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for callID, entry := range s.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		stale := entry.session == nil || now.Sub(entry.session.LastActivity) > s.idleTimeout
		entry.mu.Unlock()
		if stale {
			delete(s.sessions, callID)
		}
	}
}
