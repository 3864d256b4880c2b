package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Disabled(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0, 5))
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	require.NotNil(t, rl)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"), "burst exhausted")

	assert.True(t, rl.allow("10.0.0.2"), "buckets are per client")

	// 60/min refills one token per second
	now = now.Add(time.Second)
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))

	// refill never exceeds the burst
	now = now.Add(time.Hour)
	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return time.Unix(0, 0) }

	var passed, limited int
	h := rl.Limit(func(w http.ResponseWriter, r *http.Request) {
		limited++
		w.WriteHeader(http.StatusOK)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed++
	}))

	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/completion", nil)
		req.RemoteAddr = "192.0.2.7:51234"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1, passed)
	assert.Equal(t, 2, limited)
}

func TestRateLimiter_ClientKey(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name    string
		remote  string
		xff     []string
		trusted []netip.Prefix
		want    string
	}{
		{name: "peer with port", remote: "192.0.2.7:51234", want: "192.0.2.7"},
		{name: "bare peer", remote: "203.0.113.9", want: "203.0.113.9"},
		{
			name:   "forwarded header ignored without trusted proxies",
			remote: "198.51.100.1:4000",
			xff:    []string{"203.0.113.50"},
			want:   "198.51.100.1",
		},
		{
			name:    "forwarded header ignored from untrusted peer",
			remote:  "198.51.100.1:4000",
			xff:     []string{"203.0.113.50"},
			trusted: trusted,
			want:    "198.51.100.1",
		},
		{
			name:    "rightmost untrusted hop from trusted proxy",
			remote:  "10.1.2.3:4000",
			xff:     []string{"1.1.1.1, 203.0.113.50, 10.9.9.9"},
			trusted: trusted,
			want:    "203.0.113.50",
		},
		{
			name:    "hop with port",
			remote:  "10.1.2.3:4000",
			xff:     []string{"203.0.113.50:61000"},
			trusted: trusted,
			want:    "203.0.113.50",
		},
		{
			name:    "multiple header lines",
			remote:  "10.1.2.3:4000",
			xff:     []string{"1.1.1.1", "203.0.113.50"},
			trusted: trusted,
			want:    "203.0.113.50",
		},
		{
			name:    "garbage hop falls back to peer",
			remote:  "10.1.2.3:4000",
			xff:     []string{"unknown"},
			trusted: trusted,
			want:    "10.1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(60, 1, tt.trusted...)

			req := httptest.NewRequest(http.MethodPost, "/api/chat/completion", nil)
			req.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				req.Header.Add("X-Forwarded-For", v)
			}

			assert.Equal(t, tt.want, rl.clientKey(req))
		})
	}
}
