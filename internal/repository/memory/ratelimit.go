package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is an in-process token bucket per key, used when no redis is
// configured.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	now      func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewRateLimiter creates a limiter refilling requestsPerMinute tokens per
// minute with room for burst extra requests. A positive sweepInterval starts
// a goroutine that evicts refilled buckets until Close is called.
func NewRateLimiter(requestsPerMinute, burst int, sweepInterval time.Duration) *RateLimiter {
	r := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(requestsPerMinute) / 60),
		burst:    requestsPerMinute + burst,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if sweepInterval > 0 {
		go r.sweepLoop(sweepInterval)
	}
	return r
}

// Allow checks if a request should be allowed based on rate limits
// Returns (allowed, remaining, resetTime, error)
func (r *RateLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := r.now()

	r.mu.Lock()
	lim, ok := r.limiters[key]
	if !ok {
		lim = rate.NewLimiter(r.limit, r.burst)
		r.limiters[key] = lim
	}
	r.mu.Unlock()

	allowed := lim.AllowN(now, 1)

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	reset := now
	if r.limit > 0 {
		reset = now.Add(time.Duration(float64(time.Second) / float64(r.limit)))
	}

	return allowed, remaining, reset, nil
}

// Reset forgets the bucket for a key
func (r *RateLimiter) Reset(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.limiters, key)
	r.mu.Unlock()
	return nil
}

// Sweep evicts buckets that have refilled completely and returns how many
// were removed. A full bucket behaves exactly like a new one.
func (r *RateLimiter) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for key, lim := range r.limiters {
		if lim.TokensAt(now) >= float64(r.burst) {
			delete(r.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked buckets
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

func (r *RateLimiter) Close() error {
	r.once.Do(func() { close(r.stop) })
	return nil
}

func (r *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.stop:
			return
		}
	}
}
