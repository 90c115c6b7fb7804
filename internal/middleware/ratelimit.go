// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter throttles requests per client IP over a sliding window.
// Separate instances guard separate surfaces (credential endpoints get
// a tighter budget than public form posts), so limits are per limiter,
// not global.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string][]time.Time
	limit    int
	window   time.Duration
	stopCh   chan struct{}
}

// NewRateLimiter allows limit requests per window for each client. A
// background goroutine evicts idle clients; call Stop on shutdown.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

// Stop terminates the eviction goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.stopCh:
			return
		}
	}
}

// allow records a request for key and reports whether it stays within
// the limit. Timestamps that fell out of the window are pruned on each
// call, so the per-key slice never outgrows the limit.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.visitors[key][:0]
	for _, ts := range rl.visitors[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	if len(recent) >= rl.limit {
		rl.visitors[key] = recent
		return false
	}
	rl.visitors[key] = append(recent, now)
	return true
}

// evictIdle drops clients with no request inside the current window.
func (rl *RateLimiter) evictIdle() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, stamps := range rl.visitors {
		idle := true
		for _, ts := range stamps {
			if ts.After(cutoff) {
				idle = false
				break
			}
		}
		if idle {
			delete(rl.visitors, key)
		}
	}
}

// Middleware rate-limits by client IP, answering 429 past the limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address, trusting X-Forwarded-For and
// X-Real-IP from the reverse proxy before falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Leftmost entry is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
