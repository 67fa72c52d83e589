package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps call sessions in Redis so they survive process
// restarts. Idle expiry rides on key TTLs. Per-call in-process locks
// serialize duplicate deliveries landing on one instance; across instances
// the read-modify-write is last-write-wins. The provider posts a call's
// webhooks sequentially and waits for each response, so cross-instance
// overlap is limited to delivery retries.
type RedisSessionStore struct {
	client       *redis.Client
	systemPrompt string
	idleTimeout  time.Duration
	now          func() time.Time

	mu    sync.Mutex
	locks map[string]*callLock
}

// callLock is a per-call mutex with a waiter count so the store can drop the
// map entry once the last holder releases it.
type callLock struct {
	mu   sync.Mutex
	refs int
}

// NewRedisSessionStore creates a Redis-backed store.
func NewRedisSessionStore(client *redis.Client, systemPrompt string, idleTimeout time.Duration) *RedisSessionStore {
	if client == nil {
		panic("conversation: redis client cannot be nil")
	}
	return &RedisSessionStore{
		client:       client,
		systemPrompt: systemPrompt,
		idleTimeout:  idleTimeout,
		now:          time.Now,
		locks:        make(map[string]*callLock),
	}
}

// WithSession implements SessionStore.
func (s *RedisSessionStore) WithSession(ctx context.Context, callID string, fn func(sess *Session) error) error {
	lock := s.acquireLock(callID)
	defer s.releaseLock(callID, lock)

	now := s.now()
	sess, err := s.load(ctx, callID)
	if err != nil {
		return err
	}
	if sess == nil || now.Sub(sess.LastActivity) > s.idleTimeout {
		sess = newSession(callID, s.systemPrompt, now)
	}
	sess.LastActivity = now

	if err := fn(sess); err != nil {
		return err
	}
	return s.save(ctx, sess)
}

// Close releases the underlying Redis connection.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

func (s *RedisSessionStore) acquireLock(callID string) *callLock {
	s.mu.Lock()
	lock, ok := s.locks[callID]
	if !ok {
		lock = &callLock{}
		s.locks[callID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// releaseLock unlocks and drops the map entry with the last reference, so the
// lock map cannot accumulate an entry per call for the process lifetime.
func (s *RedisSessionStore) releaseLock(callID string, lock *callLock) {
	lock.mu.Unlock()
	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, callID)
	}
	s.mu.Unlock()
}

func (s *RedisSessionStore) load(ctx context.Context, callID string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(callID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("conversation: failed to load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("conversation: failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("conversation: failed to marshal session: %w", err)
	}
	// TTL slightly past the idle timeout so lazy staleness still decides.
	ttl := s.idleTimeout * 2
	if err := s.client.Set(ctx, sessionKey(sess.CallID), data, ttl).Err(); err != nil {
		return fmt.Errorf("conversation: failed to persist session: %w", err)
	}
	return nil
}

func sessionKey(callID string) string {
	return fmt.Sprintf("call_session:%s", callID)
}
