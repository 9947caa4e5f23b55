package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aristotle-me/fightmatch/internal/store"
)

// CORS enforces the origin allow-list. State-mutating requests from
// outside the list are rejected outright; reads from unrecognized or
// absent origins pass but get a restrictive CORS origin back. Preflight
// requests are answered here.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	var fallback string
	if len(allowedOrigins) > 0 {
		fallback = allowedOrigins[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			isAllowed := allowed[origin]

			corsOrigin := fallback
			switch {
			case isAllowed:
				corsOrigin = origin
			case origin == "":
				// Direct curl/browser access: fine for reads.
				corsOrigin = "*"
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", corsOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			if r.Method != http.MethodGet && r.Method != http.MethodHead && !isAllowed {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitConfig carries the per-window ceilings. The record route gets
// the lower ceiling; everything else the general one.
type RateLimitConfig struct {
	Window     time.Duration
	MaxGeneral int
	MaxRecord  int
	RecordPath string
}

// RateLimit counts requests per client IP in fixed windows, with the
// counters kept in the shared store so every replica sees the same
// buckets. Increments are fire-and-forget; if the store is unreachable
// the limiter degrades to disabled rather than failing requests.
func RateLimit(s store.Store, cfg RateLimitConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	windowSecs := int64(cfg.Window / time.Second)
	if windowSecs <= 0 {
		windowSecs = 60
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			bucket := "ratelimit:" + ip + ":" + strconv.FormatInt(time.Now().Unix()/windowSecs, 10)

			limit := cfg.MaxGeneral
			if cfg.RecordPath != "" && r.URL.Path == cfg.RecordPath {
				limit = cfg.MaxRecord
			}

			count := 0
			data, err := s.Get(r.Context(), bucket)
			switch {
			case err == nil:
				count, _ = strconv.Atoi(string(data))
			case !errors.Is(err, store.ErrNotFound):
				// Store outage: rate limiting disabled, request continues.
				logger.Warn("rate limit check failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if limit > 0 && count >= limit {
				rateLimitedTotal.Inc()
				w.Header().Set("Retry-After", strconv.FormatInt(windowSecs, 10))
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, please slow down",
				})
				return
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := s.Put(ctx, bucket, []byte(strconv.Itoa(count+1)), time.Duration(2*windowSecs)*time.Second); err != nil {
					logger.Debug("rate limit increment failed", "error", err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", clientIP(r),
			)
		})
	}
}
