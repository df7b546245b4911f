package helpers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/logger"
)

const ctxStashKey = "logger_ctx"

// StoreContext stashes a context.Context on the tele.Context so that
// downstream helpers reuse it instead of rebuilding.
func StoreContext(c tele.Context, ctx context.Context) {
	if c == nil || ctx == nil {
		return
	}
	c.Set(ctxStashKey, ctx)
}

// ContextFrom returns the context previously stored by middleware, if any.
func ContextFrom(c tele.Context) (context.Context, bool) {
	if c == nil {
		return nil, false
	}
	ctx, ok := c.Get(ctxStashKey).(context.Context)
	return ctx, ok
}

// BuildContext derives a context.Context from the update, carrying the
// request ID and update/user/chat metadata for consistent service logging.
// The result is stashed, so repeated calls on one update are cheap.
func BuildContext(c tele.Context) context.Context {
	if cached, ok := ContextFrom(c); ok {
		return cached
	}

	updID := c.Update().ID
	userID, chatID := senderChatIDs(c)

	rid, _ := c.Get("rid").(string)
	if rid == "" {
		rid = logger.CompactRID(logger.BuildRID(updID, chatID, userID))
	}

	ctx := logger.WithRID(context.Background(), rid)
	ctx = logger.WithUpdateMeta(ctx, updID, userID, chatID)
	ctx = logger.WithLogger(ctx, logger.Component("tg"))
	StoreContext(c, ctx)
	return ctx
}

// WithHandler enriches the stored context with the handler name.
func WithHandler(c tele.Context, handler string) context.Context {
	ctx := BuildContext(c)
	if handler == "" {
		return ctx
	}
	ctx = logger.WithHandler(ctx, handler)
	StoreContext(c, ctx)
	return ctx
}

func senderChatIDs(c tele.Context) (userID, chatID int64) {
	if u := c.Sender(); u != nil {
		userID = u.ID
	}
	if ch := c.Chat(); ch != nil {
		chatID = ch.ID
	}
	return userID, chatID
}
