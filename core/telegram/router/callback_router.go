package router

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/sirajbot/siraj/core/telegram"
	"github.com/sirajbot/siraj/core/telegram/middleware"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callback tokens through the
// registry by namespace prefix. Handlers are responsible for acknowledging
// the callback; the fallback path acknowledges unknown tokens itself.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		token := middleware.CallbackToken(c.Callback())
		ns, cbHandler, ok := reg.MatchCallback(token)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			return handleWithSummary(c, "callback.unknown", start, func() error {
				if fallback != nil {
					return fallback(c)
				}
				return c.Respond()
			}, slog.String("payload", token))
		}

		name := "callback." + normalizeHandlerName(ns)
		instrumented := middleware.MessageMetricsMiddleware(cbHandler)
		return handleWithSummary(c, name, start, func() error {
			return instrumented(c)
		}, slog.String("cb_ns", ns))
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
