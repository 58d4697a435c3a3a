package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"workerTracker/internal/logger"

	"go.uber.org/zap"
)

const rateWindow = time.Minute

type window struct {
	count   int
	resetAt time.Time
}

// limiter - фиксированное окно в минуту на IP клиента
type limiter struct {
	rpm     int
	now     func() time.Time
	mtx     sync.Mutex
	clients map[string]*window
	sweepAt time.Time
}

// allow учитывает запрос и возвращает остаток и момент сброса окна.
func (l *limiter) allow(ip string) (ok bool, remaining int, resetAt time.Time) {
	now := l.now()

	l.mtx.Lock()
	defer l.mtx.Unlock()

	if now.After(l.sweepAt) {
		for key, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, key)
			}
		}
		l.sweepAt = now.Add(rateWindow)
	}

	w, exists := l.clients[ip]
	if !exists || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(rateWindow)}
		l.clients[ip] = w
	}
	if w.count >= l.rpm {
		return false, 0, w.resetAt
	}
	w.count++
	return true, l.rpm - w.count, w.resetAt
}

// RateLimit ограничивает число запросов с одного IP. rpm <= 0 отключает лимит.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	return rateLimit(rpm, time.Now)
}

func rateLimit(rpm int, now func() time.Time) func(http.Handler) http.Handler {
	if rpm <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &limiter{rpm: rpm, now: now, clients: make(map[string]*window)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, remaining, resetAt := l.allow(ip)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				retryAfter := int(resetAt.Sub(now()).Seconds()) + 1
				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("client_ip", ip),
					zap.Int("rpm", rpm),
					zap.String("request_id", GetRequestID(r.Context())))

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":   "RATE_LIMITED",
					"message": "Слишком много запросов. Попробуйте позже.",
					"details": map[string]any{"retryAfter": retryAfter},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP - адрес без порта; X-Forwarded-For уже разобран chi RealIP
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
