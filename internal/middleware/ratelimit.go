package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count int
	until time.Time
}

// KeyFunc picks the identity a request is counted against.
type KeyFunc func(r *http.Request) string

// ByClientIP counts requests per client address.
func ByClientIP(r *http.Request) string {
	return "ip:" + clientIPForRateLimit(r)
}

// BySession counts requests per authenticated session, falling back to the
// client address before AuthJWT has run.
func BySession(r *http.Request) string {
	if id := SessionIDFromContext(r.Context()); id != "" {
		return "session:" + id
	}
	return ByClientIP(r)
}

// sweepThreshold bounds how many buckets accumulate before expired ones are
// dropped.
const sweepThreshold = 1024

// RateLimit allows limit requests per key in each window of length per.
// A non-positive limit disables it.
func RateLimit(limit int, per time.Duration, key KeyFunc) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if key == nil {
		key = ByClientIP
	}
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			now := time.Now()
			mu.Lock()
			if len(buckets) >= sweepThreshold {
				for id, b := range buckets {
					if now.After(b.until) {
						delete(buckets, id)
					}
				}
			}
			b, ok := buckets[k]
			if !ok || now.After(b.until) {
				b = &bucket{until: now.Add(per)}
				buckets[k] = b
			}
			if b.count >= limit {
				retry := int(math.Ceil(b.until.Sub(now).Seconds()))
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"too many requests"}}`))
				return
			}
			b.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPForRateLimit(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
