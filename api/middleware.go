package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS allows the browser control surface to call the API from any
// origin and answers preflight requests directly.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// RequestSizeLimit caps mutation request bodies at maxBytes. Pipeline
// control payloads are tiny; anything larger is not ours.
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// clientLimiter is one client's token bucket plus its last activity.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool tracks one limiter per client IP and evicts entries idle
// longer than ttl so the map does not grow without bound.
type limiterPool struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

func newLimiterPool(ttl time.Duration) *limiterPool {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	p := &limiterPool{
		clients: make(map[string]*clientLimiter),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go p.sweep()
	return p
}

func (p *limiterPool) get(clientIP string, rps, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	cl, ok := p.clients[clientIP]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), burst),
		}
		p.clients[clientIP] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

func (p *limiterPool) sweep() {
	ticker := time.NewTicker(p.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.evictIdle(time.Now())
		case <-p.stop:
			return
		}
	}
}

func (p *limiterPool) evictIdle(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ip, cl := range p.clients {
		if now.Sub(cl.lastSeen) > p.ttl {
			delete(p.clients, ip)
		}
	}
}

func (p *limiterPool) close() {
	p.once.Do(func() { close(p.stop) })
}

// PerClientRateLimit rejects clients exceeding rps sustained requests
// per second with the given burst allowance.
func PerClientRateLimit(pool *limiterPool, rps, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !pool.get(c.ClientIP(), rps, burst).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, slow down",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
