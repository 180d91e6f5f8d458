package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter tracks request timestamps per client IP over a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
	}
}

// Limit rejects a client once it exceeds max requests within the window.
func (m *RateLimiter) Limit(max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		m.mu.Lock()
		if seen, exists := m.requests[clientIP]; exists {
			var recent []time.Time
			for _, t := range seen {
				if now.Sub(t) < window {
					recent = append(recent, t)
				}
			}
			m.requests[clientIP] = recent
		}

		if len(m.requests[clientIP]) >= max {
			m.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		m.requests[clientIP] = append(m.requests[clientIP], now)
		m.mu.Unlock()

		c.Next()
	}
}

// RequireJSON rejects POST/PUT/PATCH requests whose body is not JSON.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			contentType := c.GetHeader("Content-Type")
			if !strings.Contains(contentType, "application/json") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
