package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore keeps the short-lived checkout confirmation codes, keyed by
// buyer. Injected into the Service so tests run without a real cache.
//
// Confirmation does a plain get, compare, then delete. Two confirms
// racing inside the TTL window can both read the same code and
// double-submit an order; the store does not close that window.
type CodeStore interface {
	Set(ctx context.Context, buyerID uint, code string, ttl time.Duration) error
	// Get returns ErrCodeExpired when no live code exists for the buyer.
	Get(ctx context.Context, buyerID uint) (string, error)
	Delete(ctx context.Context, buyerID uint) error
}

func codeKey(buyerID uint) string {
	return fmt.Sprintf("cart_checkout_otp_%d", buyerID)
}

// RedisCodeStore backs CodeStore with Redis, relying on its key TTLs.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func (s *RedisCodeStore) Set(ctx context.Context, buyerID uint, code string, ttl time.Duration) error {
	return s.client.Set(ctx, codeKey(buyerID), code, ttl).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, buyerID uint) (string, error) {
	code, err := s.client.Get(ctx, codeKey(buyerID)).Result()
	if err == redis.Nil {
		return "", ErrCodeExpired
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, buyerID uint) error {
	return s.client.Del(ctx, codeKey(buyerID)).Err()
}

// MemoryCodeStore is an in-process CodeStore for tests and single-node
// development runs. Entries expire lazily on Get.
type MemoryCodeStore struct {
	mu      sync.Mutex
	entries map[uint]memoryEntry
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{entries: make(map[uint]memoryEntry)}
}

func (s *MemoryCodeStore) Set(_ context.Context, buyerID uint, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[buyerID] = memoryEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) Get(_ context.Context, buyerID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[buyerID]
	if !ok {
		return "", ErrCodeExpired
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, buyerID)
		return "", ErrCodeExpired
	}
	return entry.code, nil
}

func (s *MemoryCodeStore) Delete(_ context.Context, buyerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, buyerID)
	return nil
}
