// Package otp issues and redeems the short numeric codes that gate job
// handoffs between employer and employee.
package otp

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"gigmate/marketplace-service/internal/status"
)

// Purpose scopes a code to one step of the job lifecycle.
type Purpose string

const (
	// PurposeStart gates the accepted → work-in-progress handoff.
	PurposeStart Purpose = "start"
	// PurposeComplete gates the work-in-progress → completed hand-back.
	PurposeComplete Purpose = "complete"
)

// ErrCodeInvalid is returned when a submitted code is malformed, expired,
// already used, or wrong. Callers get no finer distinction; neither should
// the person guessing.
var ErrCodeInvalid = errors.New("invalid or expired code")

// CodeStore holds at most one live code per (purpose, application). TakeCode
// is single-use: a successful read removes the code.
type CodeStore interface {
	PutCode(ctx context.Context, key, code string, ttl time.Duration) error
	// TakeCode returns the stored code, or "" when none is live.
	TakeCode(ctx context.Context, key string) (string, error)
}

// Manager issues six-digit codes and redeems each at most once.
type Manager struct {
	store CodeStore
	ttl   time.Duration
}

// NewManager returns a Manager whose codes live for ttl.
func NewManager(store CodeStore, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Issue creates a fresh code for the application and purpose, replacing any
// code issued earlier for the same pair.
func (m *Manager) Issue(ctx context.Context, purpose Purpose, applicationID string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := m.store.PutCode(ctx, codeKey(purpose, applicationID), code, m.ttl); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	return code, nil
}

// Redeem checks the submitted code and consumes it. A well-formed wrong
// guess burns the outstanding code, so one issued code survives exactly one
// attempt; malformed input is rejected before the stored code is touched.
func (m *Manager) Redeem(ctx context.Context, purpose Purpose, applicationID, submitted string) error {
	if !status.IsValidOTPFormat(submitted) {
		return ErrCodeInvalid
	}
	stored, err := m.store.TakeCode(ctx, codeKey(purpose, applicationID))
	if err != nil {
		return fmt.Errorf("take code: %w", err)
	}
	if stored == "" || !hmac.Equal([]byte(stored), []byte(submitted)) {
		return ErrCodeInvalid
	}
	return nil
}

func codeKey(p Purpose, applicationID string) string {
	return fmt.Sprintf("otp:%s:%s", p, applicationID)
}

// generateCode draws six digits from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ─── Redis-backed store ────────────────────────────────────────────────────

// RedisCodeStore keeps codes in Redis. GETDEL keeps redemption single-use
// even with several service replicas running.
type RedisCodeStore struct {
	rdb *redis.Client
}

// NewRedisCodeStore returns a CodeStore backed by rdb.
func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func (s *RedisCodeStore) PutCode(ctx context.Context, key, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, code, ttl).Err()
}

func (s *RedisCodeStore) TakeCode(ctx context.Context, key string) (string, error) {
	code, err := s.rdb.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// ─── In-memory store ───────────────────────────────────────────────────────

// MemoryCodeStore is an in-process CodeStore for tests.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]memoryCode
}

type memoryCode struct {
	code      string
	expiresAt time.Time
}

// NewMemoryCodeStore creates an empty in-memory code store.
func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{codes: make(map[string]memoryCode)}
}

func (s *MemoryCodeStore) PutCode(_ context.Context, key, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key] = memoryCode{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) TakeCode(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[key]
	if !ok {
		return "", nil
	}
	delete(s.codes, key)
	if time.Now().After(c.expiresAt) {
		return "", nil
	}
	return c.code, nil
}
