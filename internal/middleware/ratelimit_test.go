package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// memoryCounter stands in for Redis: one counter per key, never expiring.
type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *memoryCounter) incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(nil, 2, 30*time.Second, logger.Discard())
	rl.count = (&memoryCounter{}).incr
	r := limitedRouter(rl)

	for i := 0; i < 2; i++ {
		if w := hit(r, "192.0.2.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := hit(r, "192.0.2.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}
	if body := w.Body.String(); !strings.Contains(body, `"rate_limited"`) {
		t.Fatalf("unexpected body %s", body)
	}

	// counters are per client address
	if w := hit(r, "192.0.2.2"); w.Code != http.StatusOK {
		t.Fatalf("another client must not be limited, got %d", w.Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	rl := NewRateLimiter(nil, 1, time.Minute, logger.Discard())
	rl.count = func(context.Context, string) (int64, error) {
		return 0, errors.New("connection refused")
	}
	r := limitedRouter(rl)

	for i := 0; i < 3; i++ {
		if w := hit(r, "192.0.2.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 while redis is down, got %d", i, w.Code)
		}
	}
}

func TestRateLimiterUnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	r := limitedRouter(NewRateLimiter(rdb, 1, time.Minute, logger.Discard()))
	for i := 0; i < 2; i++ {
		if w := hit(r, "192.0.2.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

// TestRateLimiterRedis runs the Lua window against a real server when
// REDIS_URL is set.
func TestRateLimiterRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatal(err)
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	rl := NewRateLimiter(rdb, 2, time.Minute, logger.Discard())
	rl.prefix = "rl:test:" + uuid.NewString()
	r := limitedRouter(rl)

	codes := []int{hit(r, "192.0.2.9").Code, hit(r, "192.0.2.9").Code, hit(r, "192.0.2.9").Code}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 200,200,429 got %v", codes)
	}

	ttl, err := rdb.PTTL(context.Background(), rl.prefix+":192.0.2.9").Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("window key must expire within a minute, ttl=%v err=%v", ttl, err)
	}
}
