package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/sirajbot/siraj/core/config"
	"github.com/sirajbot/siraj/core/telegram/middleware"
)

// DefaultMiddlewares builds the standard global chain: panic recovery,
// per-user rate limiting and request-scoped logging. Metrics wrapping is
// applied per route by the routers, not globally.
func DefaultMiddlewares(cfg *coreconfig.Config, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: func(next tele.HandlerFunc) tele.HandlerFunc {
			return middleware.RecoverMiddleware(next)
		}},
	}

	if cfg != nil && cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		limiter := middleware.RateLimitMiddleware(middleware.RateLimitOptions{
			Interval:  time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:   exclude,
			OnLimited: onLimited,
		})
		mws = append(mws, Middleware{Name: "rate_limit", Use: func(next tele.HandlerFunc) tele.HandlerFunc {
			return limiter(next)
		}})
	}

	mws = append(mws, Middleware{Name: "logger", Use: func(next tele.HandlerFunc) tele.HandlerFunc {
		return middleware.LoggerMiddleware(next)
	}})

	return mws
}
