package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	clock := start
	l := NewLimiter(Config{
		Enabled: true,
		Default: Rule{Limit: 100, Window: time.Minute},
		Rules:   DefaultRules(2, time.Minute),
		IdleTTL: time.Hour,
	})
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestAllow_BatchEndpointLimited(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1_700_000_000, 0))

	ok, info := l.Allow("1.2.3.4", "/match/rank-targets", http.MethodPost)
	assert.True(t, ok)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	ok, _ = l.Allow("1.2.3.4", "/match/rank-targets", http.MethodPost)
	assert.True(t, ok)

	ok, info = l.Allow("1.2.3.4", "/match/rank-targets", http.MethodPost)
	assert.False(t, ok)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 30*time.Second)

	ok, _ = l.Allow("5.6.7.8", "/match/rank-targets", http.MethodPost)
	assert.True(t, ok, "other clients have their own bucket")
}

func TestAllow_Refills(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1_700_000_000, 0))
	for i := 0; i < 2; i++ {
		ok, _ := l.Allow("c", "/me/matches", http.MethodGet)
		require.True(t, ok)
	}
	ok, _ := l.Allow("c", "/me/matches", http.MethodGet)
	require.False(t, ok)

	*clock = clock.Add(31 * time.Second)
	ok, _ = l.Allow("c", "/me/matches", http.MethodGet)
	assert.True(t, ok)
}

func TestAllow_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1_700_000_000, 0))
	for i := 0; i < 500; i++ {
		ok, _ := l.Allow("c", "/health", http.MethodGet)
		require.True(t, ok)
	}
	assert.Equal(t, 0, l.size())
}

func TestAllow_DisabledAndWhitelist(t *testing.T) {
	off := NewLimiter(Config{Enabled: false, Default: Rule{Limit: 1, Window: time.Hour}})
	for i := 0; i < 3; i++ {
		ok, _ := off.Allow("c", "/match/score", http.MethodPost)
		assert.True(t, ok)
	}

	wl := NewLimiter(Config{
		Enabled:   true,
		Default:   Rule{Limit: 1, Window: time.Hour},
		Whitelist: map[string]bool{"10.0.0.1": true},
	})
	for i := 0; i < 3; i++ {
		ok, _ := wl.Allow("10.0.0.1", "/match/score", http.MethodPost)
		assert.True(t, ok)
	}
}

func TestAllow_PrunesIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1_700_000_000, 0))
	l.Allow("old", "/match/score", http.MethodPost)
	assert.Equal(t, 1, l.size())

	*clock = clock.Add(2 * time.Hour)
	l.Allow("new", "/match/score", http.MethodPost)
	assert.Equal(t, 1, l.size())
}

func TestMatchRule(t *testing.T) {
	rules := DefaultRules(5, time.Minute)

	r := MatchRule("/projects/abc/candidates", http.MethodGet, rules)
	require.NotNil(t, r)
	assert.Equal(t, "/projects/", r.Path)

	assert.Nil(t, MatchRule("/projects/abc/decision", http.MethodPost, rules))
	assert.Nil(t, MatchRule("/match/score", http.MethodPost, rules))

	r = MatchRule("/health", http.MethodGet, rules)
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Limit)
}
