package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/inventory-service/internal/errors"
	"github.com/aaravmahajanofficial/inventory-service/internal/metrics"
	repository "github.com/aaravmahajanofficial/inventory-service/internal/repositories"
	"github.com/aaravmahajanofficial/inventory-service/internal/utils/response"
)

type RateLimiter struct {
	repo repository.RateLimitRepository
}

func NewRateLimiter(repo repository.RateLimitRepository) *RateLimiter {
	return &RateLimiter{repo: repo}
}

// Limit throttles write requests per authenticated user, or per client IP
// when no user is attached. A Redis failure lets the request through.
func (l *RateLimiter) Limit(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		subject := clientSubject(r)

		allowed, remaining, retryAfter, err := l.repo.CheckWriteRateLimit(r.Context(), subject)
		if err != nil {
			logger.Error("Rate limit check failed, allowing request", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			metrics.RecordRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, errors.TooManyRequestsError("Too many write requests, please try again later"))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		next.ServeHTTP(w, r)
	}
}

func clientSubject(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return "user:" + claims.UserID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
