package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// RateLimiter allows limit requests per client IP in each fixed window.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	l := newWindowLimiter(limit, window)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if wait, ok := l.allow(ip, time.Now()); !ok {
				log.WithField("ip", ip).Debug("rate limit exceeded")
				c.Response().Header().Set("Retry-After", retryAfter(wait))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

type window struct {
	count int
	start time.Time
}

// windowLimiter counts requests per key in fixed windows. Windows that have
// ended are dropped at most once per window length, so the map only holds
// clients seen recently.
type windowLimiter struct {
	mu        sync.Mutex
	limit     int
	length    time.Duration
	windows   map[string]*window
	lastSweep time.Time
}

func newWindowLimiter(limit int, length time.Duration) *windowLimiter {
	return &windowLimiter{
		limit:   limit,
		length:  length,
		windows: make(map[string]*window),
	}
}

// allow records a request for key at now. When the key is over its limit it
// reports false and how long until its window ends.
func (l *windowLimiter) allow(key string, now time.Time) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || l.expired(w, now) {
		w = &window{start: now}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		return w.start.Add(l.length).Sub(now), false
	}
	w.count++
	return 0, true
}

func (l *windowLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.length {
		return
	}
	l.lastSweep = now

	for key, w := range l.windows {
		if l.expired(w, now) {
			delete(l.windows, key)
		}
	}
}

func (l *windowLimiter) expired(w *window, now time.Time) bool {
	return now.Sub(w.start) > l.length
}

func (l *windowLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func retryAfter(wait time.Duration) string {
	seconds := int(wait.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
