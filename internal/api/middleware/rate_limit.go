package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bucket 單一鍵的令牌桶
type bucket struct {
	tokens   float64
	lastFill time.Time
}

// RateLimiter 按使用者限流
// 計畫的寫入操作本來就是單一寫者，限流也跟著以使用者為單位，
// 一個使用者刷新不會吃掉別人的配額。沒帶 user_id 的請求退回以
// 來源 IP 計
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64 // 每秒補充的令牌數
	now      func() time.Time
}

// NewRateLimiter 創建按鍵限流器
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		now:      time.Now,
	}
}

// Allow 檢查指定鍵是否允許請求
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, exists := rl.buckets[key]
	if !exists {
		// 桶太多時整批丟掉重來，閒置使用者的桶本來就該是滿的
		if len(rl.buckets) >= 10000 {
			rl.buckets = make(map[string]*bucket)
		}
		b = &bucket{tokens: rl.capacity, lastFill: now}
		rl.buckets[key] = b
	}

	// 按經過時間補充令牌
	elapsed := now.Sub(b.lastFill).Seconds()
	b.lastFill = now
	b.tokens += elapsed * rl.rate
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// limitKey 限流鍵：user_id 查詢參數優先，沒有就用來源 IP
func limitKey(c *gin.Context) string {
	if userID := c.Query("user_id"); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)

	return func(c *gin.Context) {
		key := limitKey(c)
		if !limiter.Allow(key) {
			common.LogInfo("Rate limit exceeded",
				zap.String("key", key),
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"code":        common.ErrCodeTooManyRequests,
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
