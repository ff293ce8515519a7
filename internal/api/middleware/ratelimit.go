package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/mwb-pricing/internal/metrics"
)

// RateLimitConfig configures the token bucket shared by all API requests.
type RateLimitConfig struct {
	// RequestsPerSecond is the refill rate. Zero or less disables limiting.
	RequestsPerSecond float64
	// Burst is the bucket size; values below one are raised to one.
	Burst int
	// PathPrefix limits only requests under this prefix. Empty limits all.
	PathPrefix string
}

// RateLimit returns echo middleware that rejects requests with 429 once the
// token bucket is empty.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	burst := max(cfg.Burst, 1)
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	retryAfter := strconv.Itoa(max(1, int(1/cfg.RequestsPerSecond)))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.PathPrefix != "" && !strings.HasPrefix(c.Request().URL.Path, cfg.PathPrefix) {
				return next(c)
			}
			if !limiter.Allow() {
				metrics.HTTPRateLimitedTotal.Inc()
				c.Response().Header().Set("Retry-After", retryAfter)
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}
