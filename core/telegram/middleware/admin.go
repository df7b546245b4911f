package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/logger"
	tghelpers "github.com/sirajbot/siraj/core/telegram/helpers"
)

// ChatAdminOptions defines how chat-admin checks should behave.
type ChatAdminOptions struct {
	// OnReject runs when the sender is not an administrator of the chat.
	OnReject tele.HandlerFunc
	// OnLookupFail runs when the membership lookup itself fails.
	OnLookupFail tele.HandlerFunc
}

// ChatAdminMiddleware ensures that only administrators of the current
// chat can invoke downstream handlers. Private chats are always allowed.
func ChatAdminMiddleware(opts ChatAdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			sender := c.Sender()
			if chat == nil || sender == nil {
				return nil
			}
			if chat.Type == tele.ChatPrivate {
				return next(c)
			}

			member, err := c.Bot().ChatMemberOf(chat, sender)
			if err != nil {
				ctx := tghelpers.BuildContext(c)
				logger.Warn(ctx, "tg", "admin_check.lookup_failed",
					slog.Int64("chat_id", chat.ID),
					slog.Int64("user_id", sender.ID),
					slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				)
				if opts.OnLookupFail != nil {
					return opts.OnLookupFail(c)
				}
				return nil
			}

			if member.Role != tele.Creator && member.Role != tele.Administrator {
				ctx := tghelpers.BuildContext(c)
				logger.Info(ctx, "tg", "admin_check.rejected",
					slog.Int64("chat_id", chat.ID),
					slog.Int64("user_id", sender.ID),
				)
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}

			return next(c)
		}
	}
}
