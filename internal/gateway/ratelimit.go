package gateway

import (
	"sync"

	"golang.org/x/time/rate"
)

// userLimiter keeps one token bucket per acting user.
type userLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func newUserLimiter(rps float64, burst int) *userLimiter {
	return &userLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *userLimiter) getLimiter(userID int64) *rate.Limiter {
	if limiter, ok := l.limiters.Load(userID); ok {
		return limiter.(*rate.Limiter)
	}

	limiter, _ := l.limiters.LoadOrStore(userID, rate.NewLimiter(l.rps, l.burst))
	return limiter.(*rate.Limiter)
}

func (l *userLimiter) Allow(userID int64) bool {
	return l.getLimiter(userID).Allow()
}
