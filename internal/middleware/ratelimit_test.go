package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip wins",
			remoteAddr: "10.0.0.1:80",
			realIP:     "198.51.100.4",
			forwarded:  "192.0.2.1",
			want:       "198.51.100.4",
		},
		{
			name:       "first forwarded-for entry",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "192.0.2.1, 10.0.0.2",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, extractClientIP(r))
		})
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	status := func(addr string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, status("203.0.113.7:1"))
	assert.Equal(t, http.StatusOK, status("203.0.113.7:1"))
	assert.Equal(t, http.StatusTooManyRequests, status("203.0.113.7:1"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, status("198.51.100.4:1"))
}
