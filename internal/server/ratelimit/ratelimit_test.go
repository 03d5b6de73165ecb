package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionTiers mirrors the production tier shape with budgets small
// enough to exhaust in a test.
func sessionTiers() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/sessions/", Method: "POST", Limit: 3, Window: time.Hour, Burst: 3},
		{Path: "/sessions", Method: "POST", Limit: 5, Window: time.Minute, Burst: 5},
		{Path: "/sessions/", Method: "PUT", Limit: 4, Window: time.Minute, Burst: 4},
	}
}

func newSessionLimiter() *Limiter {
	return NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: sessionTiers(),
	})
}

func TestBucket_BurstThenDeny(t *testing.T) {
	b := newBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		assert.True(t, b.take(), "request %d should fit in the burst", i+1)
	}
	assert.False(t, b.take(), "burst exhausted, next request must wait for refill")
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(2, 10.0) // 10 tokens/sec refills fast enough to observe
	require.True(t, b.take())
	require.True(t, b.take())
	require.False(t, b.take())

	time.Sleep(150 * time.Millisecond)

	assert.True(t, b.take(), "expected a token after refill")
}

func TestBucket_Status(t *testing.T) {
	b := newBucket(4, 1.0)
	require.True(t, b.take())

	remaining, resetAt := b.status()
	assert.Equal(t, 3, remaining)
	assert.True(t, resetAt.After(time.Now()), "reset time should be in the future while below capacity")
}

func TestLimiter_GenerationTier(t *testing.T) {
	l := newSessionLimiter()
	defer l.Stop()

	client := "203.0.113.7"
	for i := 0; i < 3; i++ {
		allowed, info := l.Allow(client, "/sessions/abc/generate", "POST")
		require.True(t, allowed, "generation %d should fit the tier burst", i+1)
		assert.Equal(t, 3, info.Limit)
	}

	allowed, info := l.Allow(client, "/sessions/abc/generate", "POST")
	assert.False(t, allowed, "generation tier burst exhausted")
	assert.Equal(t, 3, info.Limit)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_SessionCreationIsExactMatch(t *testing.T) {
	l := newSessionLimiter()
	defer l.Stop()

	client := "203.0.113.7"

	// Exhaust the generation tier.
	for i := 0; i < 3; i++ {
		l.Allow(client, "/sessions/abc/generate", "POST")
	}

	// POST /sessions matches its exact entry, not the "/sessions/" prefix.
	allowed, info := l.Allow(client, "/sessions", "POST")
	assert.True(t, allowed, "session creation has its own budget")
	assert.Equal(t, 5, info.Limit)
}

func TestLimiter_MethodsTrackedSeparately(t *testing.T) {
	l := newSessionLimiter()
	defer l.Stop()

	client := "203.0.113.7"
	for i := 0; i < 3; i++ {
		l.Allow(client, "/sessions/abc/generate", "POST")
	}

	allowed, info := l.Allow(client, "/sessions/abc/job", "PUT")
	assert.True(t, allowed, "context writes have their own tier")
	assert.Equal(t, 4, info.Limit)
}

func TestLimiter_ReadsUseDefaultBudget(t *testing.T) {
	l := newSessionLimiter()
	defer l.Stop()

	allowed, info := l.Allow("203.0.113.7", "/sessions/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("203.0.113.7", "/health", "GET")
		require.True(t, allowed, "health check %d must never be limited", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_ClientsHaveSeparateBudgets(t *testing.T) {
	l := newSessionLimiter()
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow("203.0.113.7", "/sessions/abc/generate", "POST")
	}

	allowed, _ := l.Allow("198.51.100.4", "/sessions/abc/generate", "POST")
	assert.True(t, allowed, "one client draining its tier must not starve another")
}

func TestLimiter_RemainingCountsDown(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("203.0.113.7", "/sessions/abc", "GET")
		require.True(t, allowed)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("203.0.113.7", "/sessions/abc", "GET")
	assert.False(t, allowed)
	assert.Zero(t, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_Whitelist(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, info := l.Allow("127.0.0.1", "/sessions/abc/generate", "POST")
		require.True(t, allowed, "whitelisted client request %d", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.0.2.9": true},
	})
	defer l.Stop()

	allowed, _ := l.Allow("192.0.2.9", "/sessions", "POST")
	assert.False(t, allowed, "blacklisted client is always denied")
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("203.0.113.7", "/sessions/abc/generate", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_NilConfigDefaults(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("203.0.113.7", "/sessions/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_ConcurrentBudget(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := l.Allow("203.0.113.7", "/sessions/abc", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount, "concurrent requests must not oversubscribe the budget")
}

func TestLimiter_SweepReclaimsIdleBuckets(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("203.0.113.%d", i+1), "/sessions/abc", "GET")
	}
	l.mu.Lock()
	require.Len(t, l.buckets, 5)
	for _, b := range l.buckets {
		b.lastSeen = time.Now().Add(-2 * staleAfter)
	}
	l.mu.Unlock()

	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.buckets, "idle buckets should be reclaimed")
}

func TestMatchEndpoint(t *testing.T) {
	tiers := sessionTiers()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "generate route via prefix", path: "/sessions/abc/generate", method: "POST", wantLimit: 3},
		{name: "send route via prefix", path: "/sessions/abc/send", method: "POST", wantLimit: 3},
		{name: "session creation exact match wins", path: "/sessions", method: "POST", wantLimit: 5},
		{name: "context write via prefix", path: "/sessions/abc/resume", method: "PUT", wantLimit: 4},
		{name: "read has no tier", path: "/sessions/abc", method: "GET", wantNil: true},
		{name: "unknown route has no tier", path: "/metrics", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, tiers)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestMatchEndpoint_HealthNeverLimited(t *testing.T) {
	got := MatchEndpoint("/health", "GET", sessionTiers())
	require.NotNil(t, got)
	assert.Zero(t, got.Limit)
}

func TestDefaultEndpointConfigs_TierShape(t *testing.T) {
	tiers := DefaultEndpointConfigs()

	generation := MatchEndpoint("/sessions/abc/generate", "POST", tiers)
	require.NotNil(t, generation)
	creation := MatchEndpoint("/sessions", "POST", tiers)
	require.NotNil(t, creation)

	assert.Less(t, generation.Limit, creation.Limit,
		"generation burns model quota and must be budgeted tighter than session creation")
	assert.Equal(t, time.Hour, generation.Window)
}
