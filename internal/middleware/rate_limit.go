package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
)

const rateWindow = time.Minute

// clientState garde le compteur de requêtes d'un client sur la fenêtre courante
type clientState struct {
	windowStart  time.Time
	requestCount int
}

type rateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientState
	max       int
	now       func() time.Time
	lastSweep time.Time
}

func newRateLimiter(max int) *rateLimiter {
	return &rateLimiter{clients: make(map[string]*clientState), max: max, now: time.Now}
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > rateWindow {
		l.sweep(now)
	}

	state, ok := l.clients[key]
	if !ok || now.Sub(state.windowStart) > rateWindow {
		state = &clientState{windowStart: now}
		l.clients[key] = state
	}
	state.requestCount++
	return state.requestCount <= l.max
}

// sweep supprime les clients inactifs depuis deux fenêtres (appelé sous l.mu)
func (l *rateLimiter) sweep(now time.Time) {
	for key, state := range l.clients {
		if now.Sub(state.windowStart) > 2*rateWindow {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// RateLimitMiddleware limite les appels coûteux (génération) par utilisateur connecté, sinon par IP
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	return newRateLimiter(perMinute).handler()
}

func (l *rateLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("user_id")
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !l.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "The Void needs rest. Try again in a moment."})
			logs.LogJSON("WARN", "Rate limit exceeded", map[string]interface{}{
				"route": c.FullPath(),
				"key":   key,
			})
			return
		}
		c.Next()
	}
}
