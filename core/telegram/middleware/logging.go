package middleware

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/logger"
	tghelpers "github.com/sirajbot/siraj/core/telegram/helpers"
)

// dedupWindow is how long a processed update ID stays remembered so the
// receipt line is not emitted twice when middleware runs on several
// dispatch branches.
const dedupWindow = 10 * time.Second

type seenUpdates struct {
	mu   sync.Mutex
	seen map[int]time.Time
}

var recent = &seenUpdates{seen: make(map[int]time.Time)}

// markSeen records the update ID and reports whether it was already there.
func (s *seenUpdates) markSeen(updateID int) bool {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ts := range s.seen {
		if now.Sub(ts) > dedupWindow {
			delete(s.seen, id)
		}
	}
	if _, ok := s.seen[updateID]; ok {
		return true
	}
	s.seen[updateID] = now
	return false
}

// LoggerMiddleware assigns the request ID, stores the logging context,
// and emits one receipt line per update.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		var chatID, userID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}

		rid := logger.CompactRID(logger.BuildRID(upd.ID, chatID, userID))
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if !recent.markSeen(upd.ID) {
			logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received",
				receiptAttrs(c, rid)...)
		}
		return next(c)
	}
}

func receiptAttrs(c tele.Context, rid string) []slog.Attr {
	upd := c.Update()
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("rid", rid),
		slog.Int("update_id", upd.ID),
	}
	if chat := c.Chat(); chat != nil {
		attrs = append(attrs,
			slog.Int64("chat_id", chat.ID),
			slog.String("chat_type", string(chat.Type)),
		)
	}
	if user := c.Sender(); user != nil {
		attrs = append(attrs, slog.Int64("user_id", user.ID))
		if user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
	}

	var payload string
	switch {
	case upd.Callback != nil:
		payload = CallbackToken(upd.Callback)
	case upd.Message != nil:
		payload = c.Text()
	}
	if payload != "" {
		attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(payload, 256)))
	}
	return attrs
}

// CallbackToken extracts the raw callback token. Telebot prefixes data
// produced by its own button constructors with "\f"; buttons built with
// raw Data arrive unprefixed. Both forms are accepted.
func CallbackToken(cb *tele.Callback) string {
	if cb == nil {
		return ""
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	raw = strings.TrimPrefix(raw, "\\f")
	return strings.TrimSpace(raw)
}
