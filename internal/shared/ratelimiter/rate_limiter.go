package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiterInterface は、ログイン試行などの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Allow(key string) bool
}

// RateLimiterは、キー（クライアントIPなど）ごとの固定ウィンドウで操作の頻度を制限します。
type RateLimiter struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count     int
	lastReset time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allowは指定キーの操作がレートリミットの範囲内かを判定します。
// 上限超過時はfalseを返し、呼び出し側が429を返すことを想定しています。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	// interval を過ぎたらカウントリセット
	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	w.count++
	return w.count <= rl.limit
}
