package middleware

import (
	"log/slog"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/logger"
)

// RecoverMiddleware catches handler panics so a single bad update
// cannot take the poller down. The panic is logged with the request ID
// assigned by the logging middleware.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			attrs := []any{
				slog.String("event", "tg.panic"),
				slog.Any("err", r),
				slog.String("stack", string(debug.Stack())),
			}
			if rid, ok := c.Get("rid").(string); ok && rid != "" {
				attrs = append(attrs, slog.String("rid", rid))
			}
			logger.TG.Error("panic recovered", attrs...)
		}()
		return next(c)
	}
}
