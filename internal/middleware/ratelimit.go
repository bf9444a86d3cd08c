package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimiter é uma janela fixa por IP compartilhada via Redis, para que
// várias instâncias da API contem juntas.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	log    *slog.Logger
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string, log *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix, log: log}
}

// Middleware deixa passar quando o Redis falha: agendar é mais importante
// que limitar.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := rl.incr(c.Request.Context(), rl.Key(c.ClientIP(), time.Now()))
		if err != nil {
			rl.log.Warn("redis rate limiter error", "err", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		if count > int64(rl.limit) {
			abort(c, http.StatusTooManyRequests, "rate_limit_exceeded")
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(rl.limit)-count, 10))
		c.Next()
	}
}

// Key agrupa as requisições do ip na janela corrente.
func (rl *RateLimiter) Key(ip string, now time.Time) string {
	bucket := now.UnixMilli() / rl.window.Milliseconds()
	return fmt.Sprintf("%s:%s:%d", rl.prefix, ip, bucket)
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
