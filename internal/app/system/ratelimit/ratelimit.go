// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a keyed token-bucket limiter. Each key gets its own bucket
// holding up to burst tokens, refilled at limit per second.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idle    time.Duration // buckets unused this long are dropped
	now     func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing n events per period per key, with bursts
// of up to n.
func New(n int, period time.Duration) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(period / time.Duration(n)),
		burst:   n,
		idle:    2 * period,
		now:     time.Now,
	}
}

func (l *Limiter) get(key string, now time.Time) *bucket {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, k)
		}
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// Allow reports whether an event for key may happen now, consuming a token
// if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	return l.get(key, now).lim.AllowN(now, 1)
}

// Remaining returns how many events key may still make right now.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		return l.burst
	}
	n := int(b.lim.TokensAt(l.now()))
	if n < 0 {
		return 0
	}
	return n
}

// Reset clears the bucket for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// LoginLimiter limits login attempts per account email.
type LoginLimiter struct {
	emailLimiter *Limiter
}

// NewLoginLimiter allows perMinute attempts per email per minute.
// Defaults to 5 when perMinute is not positive.
func NewLoginLimiter(perMinute int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	return &LoginLimiter{emailLimiter: New(perMinute, time.Minute)}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Check reports whether a login attempt for email may proceed.
func (ll *LoginLimiter) Check(email string) bool {
	if ll == nil {
		return true
	}
	return ll.emailLimiter.Allow(emailKey(email))
}

// ResetEmail clears the attempt count for email after a successful login.
func (ll *LoginLimiter) ResetEmail(email string) {
	if ll == nil {
		return
	}
	ll.emailLimiter.Reset(emailKey(email))
}

// Remaining returns how many attempts email has left right now, or -1 when
// there is no limiter.
func (ll *LoginLimiter) Remaining(email string) int {
	if ll == nil {
		return -1
	}
	return ll.emailLimiter.Remaining(emailKey(email))
}
