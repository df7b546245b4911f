package paging

import (
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/apperr"
	"github.com/sirajbot/siraj/core/logger"
	"github.com/sirajbot/siraj/core/telegram/helpers"
	"github.com/sirajbot/siraj/core/telegram/keyboard"
	"github.com/sirajbot/siraj/core/telegram/middleware"
)

// Texts are the user-facing responses for navigation failures.
type Texts struct {
	Expired    string
	NotAllowed string
	Malformed  string
	OutOfRange string
}

// DefaultTexts answers navigation failures in English.
var DefaultTexts = Texts{
	Expired:    "This view has expired, run the command again.",
	NotAllowed: "Only the person who requested this can navigate it.",
	Malformed:  "Unsupported action.",
	OutOfRange: "Nothing further in that direction.",
}

// RenderFunc produces the message body and any feature-specific keyboard
// rows for a position. The navigation row is appended by the Navigator.
type RenderFunc[T any] func(s Session[T], position int) (text string, extra [][]keyboard.InlineBtn)

// Navigator drives position changes for one callback namespace: it
// decodes the token, looks the session up, checks the requester and the
// range, and edits the message in place. Every branch acknowledges the
// callback so the client never shows a stuck spinner.
type Navigator[T any] struct {
	Namespace string
	Store     *Store[T]
	// Base is the first valid position (1 for page numbering, 0 for
	// item indexes).
	Base   int
	Render RenderFunc[T]
	Labels NavLabels
	Texts  Texts
}

// Handle is the callback handler for the navigator's namespace.
func (n *Navigator[T]) Handle(c tele.Context) error {
	token := middleware.CallbackToken(c.Callback())

	texts := n.Texts
	if texts == (Texts{}) {
		texts = DefaultTexts
	}

	key, position, err := DecodeToken(n.Namespace, token)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: texts.Malformed, ShowAlert: true})
	}

	sess, ok := n.Store.Get(key)
	if !ok {
		logger.TG.LogAttrs(logger.Background(), slog.LevelDebug, "session expired",
			slog.String("event", "paging.expired"),
			slog.String("namespace", n.Namespace),
			slog.String("key", key),
		)
		return c.Respond(&tele.CallbackResponse{Text: texts.Expired, ShowAlert: true})
	}

	if sess.Requester != 0 {
		sender := c.Sender()
		if sender == nil || sender.ID != sess.Requester {
			if err := c.Respond(&tele.CallbackResponse{Text: texts.NotAllowed, ShowAlert: true}); err != nil {
				return err
			}
			// Surfaces as err_code=AUTHORIZATION in the handler summary.
			return apperr.Authorization("navigation denied")
		}
	}

	if position < n.Base || position >= n.Base+sess.Total {
		return c.Respond(&tele.CallbackResponse{Text: texts.OutOfRange})
	}

	text, extra := n.Render(sess, position)
	rows := make([][]keyboard.InlineBtn, 0, len(extra)+1)
	rows = append(rows, extra...)
	if nav := NavRow(n.Namespace, key, position, sess.Total, n.Base, n.Labels); nav != nil {
		rows = append(rows, nav)
	}

	if err := helpers.EditMD(c, text, keyboard.Inline(rows...)); err != nil && !isNotModified(err) {
		logger.TG.LogAttrs(logger.Background(), slog.LevelWarn, "edit failed",
			slog.String("event", "paging.edit_failed"),
			slog.String("namespace", n.Namespace),
			slog.String("err", err.Error()),
		)
	}
	return c.Respond(&tele.CallbackResponse{})
}

// Pressing the inert counter button re-requests the current position;
// Telegram rejects the identical edit and that is not a failure.
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
