package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient covers the Get/Set/Del commands the session store sends.
// Expirations are recorded, not enforced.
type MockRedisClient struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration

	GetError error
	SetError error
	DelError error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx)
	if m.GetError != nil {
		cmd.SetErr(m.GetError)
		return cmd
	}
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx)
	if m.SetError != nil {
		cmd.SetErr(m.SetError)
		return cmd
	}
	m.put(key, value.(string), expiration)
	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewIntCmd(ctx)
	if m.DelError != nil {
		cmd.SetErr(m.DelError)
		return cmd
	}
	var n int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			delete(m.ttls, key)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

// Seed writes a raw value, bypassing error injection.
func (m *MockRedisClient) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, value, 0)
}

func (m *MockRedisClient) HasKey(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// TTL returns the expiration the key was last written with, or -1 when it
// has none.
func (m *MockRedisClient) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl, ok := m.ttls[key]; ok {
		return ttl
	}
	return -1
}

func (m *MockRedisClient) put(key, value string, expiration time.Duration) {
	m.data[key] = value
	if expiration > 0 {
		m.ttls[key] = expiration
	} else {
		delete(m.ttls, key)
	}
}
