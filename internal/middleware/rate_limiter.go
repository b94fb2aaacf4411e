package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
)

// visitor holds the rate limiter and last seen time of one key.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-IP limit and a per-IP-and-lookup limit. Rates
// are requests per minute. The lookup of a request is its path plus query,
// so repeated requests for the same entry hit the tighter bucket.
type RateLimiter struct {
	globalRate, paramRate   float64
	globalBurst, paramBurst int
	ttl                     time.Duration

	muGlobal       sync.Mutex
	globalVisitors map[string]*visitor // key: ip
	muParam        sync.Mutex
	paramVisitors  map[string]map[string]*visitor // key: ip -> lookup
}

// NewRateLimiter reads its limits from config.
func NewRateLimiter() *RateLimiter {
	gr, gb := config.GetGlobalRateLimiterConfig()
	pr, pb := config.GetParamRateLimiterConfig()
	return NewRateLimiterWith(gr, gb, pr, pb, config.GetRateLimiterCleanupTimeout())
}

// NewRateLimiterWith creates a limiter with explicit per-minute rates, bursts
// and the idle time after which a visitor is forgotten.
func NewRateLimiterWith(globalPerMinute float64, globalBurst int, paramPerMinute float64, paramBurst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		globalRate:     globalPerMinute,
		globalBurst:    globalBurst,
		paramRate:      paramPerMinute,
		paramBurst:     paramBurst,
		ttl:            ttl,
		globalVisitors: make(map[string]*visitor),
		paramVisitors:  make(map[string]map[string]*visitor),
	}
}

func (rl *RateLimiter) getGlobalLimiter(ip string) *rate.Limiter {
	rl.muGlobal.Lock()
	defer rl.muGlobal.Unlock()
	v, exists := rl.globalVisitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(rl.globalRate/60.0), rl.globalBurst)
		rl.globalVisitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) getParamLimiter(ip, param string) *rate.Limiter {
	rl.muParam.Lock()
	defer rl.muParam.Unlock()
	if _, ok := rl.paramVisitors[ip]; !ok {
		rl.paramVisitors[ip] = make(map[string]*visitor)
	}
	v, exists := rl.paramVisitors[ip][param]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(rl.paramRate/60.0), rl.paramBurst)
		rl.paramVisitors[ip][param] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup removes visitors that have not been seen for longer than the ttl.
func (rl *RateLimiter) cleanup(now time.Time) {
	rl.muGlobal.Lock()
	for ip, v := range rl.globalVisitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.globalVisitors, ip)
		}
	}
	rl.muGlobal.Unlock()

	rl.muParam.Lock()
	for ip, params := range rl.paramVisitors {
		for p, v := range params {
			if now.Sub(v.lastSeen) > rl.ttl {
				delete(params, p)
			}
		}
		if len(params) == 0 {
			delete(rl.paramVisitors, ip)
		}
	}
	rl.muParam.Unlock()
}

// StartCleanup prunes stale visitors every minute until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.cleanup(now)
			}
		}
	}()
}

// Reset clears all visitor state.
func (rl *RateLimiter) Reset() {
	rl.muGlobal.Lock()
	clear(rl.globalVisitors)
	rl.muGlobal.Unlock()
	rl.muParam.Lock()
	clear(rl.paramVisitors)
	rl.muParam.Unlock()
}

// getIP extracts the client's IP address, considering X-Forwarded-For.
func getIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func lookupKey(r *http.Request) string {
	key := strings.ToLower(r.URL.Path)
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.Query().Encode()
	}
	return key
}

func tooManyRequests(w http.ResponseWriter, errMsg, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(model.Response{
		Error:     &errMsg,
		Message:   message,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

// Middleware responds with 429 and a JSON error once a limit is exceeded.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getIP(r)
		if !rl.getGlobalLimiter(ip).Allow() {
			tooManyRequests(w,
				fmt.Sprintf("Rate limit exceeded: max %g requests per minute per user/IP", rl.globalRate),
				"Too Many Requests (global limit)")
			return
		}
		if !rl.getParamLimiter(ip, lookupKey(r)).Allow() {
			tooManyRequests(w,
				fmt.Sprintf("Rate limit exceeded: max %g requests per minute per lookup per user/IP", rl.paramRate),
				"Too Many Requests (per-lookup limit)")
			return
		}
		next.ServeHTTP(w, r)
	})
}
