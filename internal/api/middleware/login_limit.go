package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/technotes/technotes-api/internal/api/metrics"
)

const loginLimitMessage = "Too many login attempts from this IP, please try again after a 60 second pause"

// AttemptLimiter counts one attempt for key and reports whether it is allowed.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// LoginLimit throttles requests per client IP. When the limiter backend is
// unreachable the request is let through and a warning is logged.
func LoginLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ok, retryAfter, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("login limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
				log.Warn().
					Str("ip", ip).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Msg(loginLimitMessage)

				secs := int(retryAfter.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"message": loginLimitMessage})
			}
			return next(c)
		}
	}
}
