// Package ratelimit limits requests per client with a token bucket per client.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool          `mapstructure:"enabled" json:"enabled"`
	Limit   int           `mapstructure:"limit" json:"limit" validate:"min=0"` // Requests per window
	Window  time.Duration `mapstructure:"window" json:"window"`
	Burst   int           `mapstructure:"burst" json:"burst" validate:"min=0"` // Defaults to Limit if 0
	IdleTTL time.Duration `mapstructure:"idle_ttl" json:"idle_ttl"`            // Forget clients idle this long
	Exempt  []string      `mapstructure:"exempt" json:"exempt,omitempty"`      // Paths never limited
}

// DefaultConfig returns the limits used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Limit:   600,
		Window:  time.Minute,
		Burst:   60,
		IdleTTL: 10 * time.Minute,
		Exempt:  []string{"/health"},
	}
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per client.
type Limiter struct {
	cfg       Config
	every     rate.Limit
	burst     int
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
	now       func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(cfg Config) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Limit
	}
	return &Limiter{
		cfg:     cfg,
		every:   rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

func (l *Limiter) exempt(path string) bool {
	for _, p := range l.cfg.Exempt {
		if p == path {
			return true
		}
	}
	return false
}

// Allow reports whether a request from clientID to path may proceed and consumes a
// token when it may.
func (l *Limiter) Allow(clientID, path string) Info {
	if !l.cfg.Enabled || l.cfg.Limit <= 0 || l.exempt(path) {
		return Info{Allowed: true}
	}

	now := l.now()
	lim := l.clientLimiter(clientID, now)

	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return Info{Allowed: false, Limit: l.cfg.Limit}
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return Info{Allowed: false, Limit: l.cfg.Limit, RetryAfter: delay}
	}

	return Info{
		Allowed:   true,
		Limit:     l.cfg.Limit,
		Remaining: max(0, int(lim.TokensAt(now))),
	}
}

func (l *Limiter) clientLimiter(clientID string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg.IdleTTL > 0 && now.Sub(l.lastSweep) >= l.cfg.IdleTTL {
		for id, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.cfg.IdleTTL {
				delete(l.clients, id)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[clientID]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[clientID] = c
	}
	c.lastSeen = now
	return c.limiter
}

// Clients returns the number of tracked clients
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
