package warns

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/apperr"
	coretelegram "github.com/sirajbot/siraj/core/telegram"
	"github.com/sirajbot/siraj/core/telegram/commands"
	"github.com/sirajbot/siraj/core/telegram/format"
	"github.com/sirajbot/siraj/core/telegram/helpers"
	"github.com/sirajbot/siraj/core/telegram/keyboard"
	"github.com/sirajbot/siraj/core/telegram/paging"
)

// Callback namespaces for the two paginated views.
const (
	nsUserPages = "warns_user"
	nsListPages = "warns_list"
)

const warnUsage = "Please reply to a message or mention a user to warn them.\n" +
	"Usage: /warn user_id reason or reply to a message with /warn reason"

const warndelUsage = "Please provide a warning ID. Usage: `/warndel [ID]`\n" +
	"See warning IDs from `/warns` or `/warns @user`"

const usernameHint = "Usernames cannot be resolved to a user id here. " +
	"Reply to the user's message or pass their numeric id instead."

var navTexts = paging.Texts{
	Expired:    "Pagination data expired. Please run the command again.",
	NotAllowed: "You didn't request this information.",
	Malformed:  "Invalid navigation data.",
	OutOfRange: "Invalid page number.",
}

// Handlers owns the warn commands and the pagination of their listings.
// Pages are pre-rendered at command time; navigation only re-displays.
type Handlers struct {
	svc *Service

	userPages *paging.Store[[]string]
	listPages *paging.Store[[]string]
	userNav   *paging.Navigator[[]string]
	listNav   *paging.Navigator[[]string]
}

// NewHandlers builds the handler set. capacity bounds each session store.
func NewHandlers(svc *Service, capacity int) *Handlers {
	h := &Handlers{
		svc:       svc,
		userPages: paging.NewStore[[]string](capacity),
		listPages: paging.NewStore[[]string](capacity),
	}
	h.userNav = &paging.Navigator[[]string]{
		Namespace: nsUserPages,
		Store:     h.userPages,
		Base:      1,
		Render:    renderPage,
		Texts:     navTexts,
	}
	h.listNav = &paging.Navigator[[]string]{
		Namespace: nsListPages,
		Store:     h.listPages,
		Base:      1,
		Render:    renderPage,
		Texts:     navTexts,
	}
	return h
}

func renderPage(s paging.Session[[]string], position int) (string, [][]keyboard.InlineBtn) {
	return s.Data[position-1], nil
}

// Register wires the warn commands and callback namespaces.
func (h *Handlers) Register(reg *coretelegram.Registry) {
	reg.RegisterCommand("/warn", commands.Command{
		Handler:       h.HandleWarn,
		Description:   "Warn a user (admins)",
		ChatAdminOnly: true,
	})
	reg.RegisterCommand("/warndel", commands.Command{
		Handler:       h.HandleWarnDel,
		Description:   "Delete a warning by ID (admins)",
		ChatAdminOnly: true,
	})
	reg.RegisterCommand("/warns", commands.Command{
		Handler:       h.HandleWarns,
		Description:   "List active warnings (admins)",
		ChatAdminOnly: true,
	})
	_ = reg.RegisterCallback(nsUserPages, h.userNav.Handle)
	_ = reg.RegisterCallback(nsListPages, h.listNav.Handle)
}

// HandleWarn implements /warn.
func (h *Handlers) HandleWarn(c tele.Context) error {
	chat, sender := c.Chat(), c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	target, reason, err := ExtractTarget(c)
	switch {
	case errors.Is(err, ErrUsernameTarget):
		return helpers.SendText(c, usernameHint)
	case errors.Is(err, ErrNoTarget):
		return helpers.SendText(c, warnUsage)
	}

	ctx := helpers.BuildContext(c)
	w, total, err := h.svc.Warn(ctx, chat.ID, target.ID, sender.ID, reason)
	if err != nil {
		return replyAppErr(c, err)
	}

	text := fmt.Sprintf(
		"⚠️ Warning issued to %s\n\n*Warning ID:* #%d\n*Reason:* %s\n*Total warnings:* %d\n*Issued by:* %s",
		h.mention(c, ctx, target.ID, target.Name, "User"),
		w.ID,
		format.EscapeMarkdown(w.Reason),
		total,
		format.Mention(sender.ID, sender.FirstName),
	)
	return helpers.ReplyMD(c, text)
}

// HandleWarnDel implements /warndel.
func (h *Handlers) HandleWarnDel(c tele.Context) error {
	chat, sender := c.Chat(), c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	args := c.Args()
	if len(args) < 1 {
		return helpers.SendMD(c, warndelUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return helpers.SendText(c, "Invalid warning ID. Please provide a numeric ID.")
	}

	ctx := helpers.BuildContext(c)
	w, err := h.svc.Remove(ctx, chat.ID, id)
	if err != nil {
		return replyAppErr(c, err)
	}

	text := fmt.Sprintf(
		"✅ Warning #%d has been deleted\n\n*User:* %s\n*Reason:* %s\n*Deleted by:* %s",
		w.ID,
		h.mention(c, ctx, w.UserID, "", "User"),
		format.EscapeMarkdown(w.Reason),
		format.Mention(sender.ID, sender.FirstName),
	)
	return helpers.ReplyMD(c, text)
}

// HandleWarns implements /warns, listing one user's warnings when a
// target is given and the chat-wide summary otherwise.
func (h *Handlers) HandleWarns(c tele.Context) error {
	chat, sender := c.Chat(), c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	target, _, err := ExtractTarget(c)
	switch {
	case errors.Is(err, ErrUsernameTarget):
		return helpers.SendText(c, usernameHint)
	case errors.Is(err, ErrNoTarget):
		return h.showChatWarnings(c, chat, sender)
	}
	return h.showUserWarnings(c, chat, sender, target)
}

func (h *Handlers) showUserWarnings(c tele.Context, chat *tele.Chat, sender *tele.User, target Target) error {
	ctx := helpers.BuildContext(c)
	rows, err := h.svc.UserWarnings(ctx, chat.ID, target.ID)
	if err != nil {
		return replyAppErr(c, err)
	}

	mention := h.mention(c, ctx, target.ID, target.Name, "User")
	if len(rows) == 0 {
		return helpers.ReplyMD(c, fmt.Sprintf("%s has no active warnings in this chat.", mention))
	}

	groups := BuildUserReport(ctx, rows, mention, h.resolver(c))
	pages := paging.PackPages(groups, paging.DefaultPageBudget)
	key := fmt.Sprintf("%d_%d", chat.ID, target.ID)
	return h.sendPaged(c, sender, h.userPages, nsUserPages, key, pages)
}

func (h *Handlers) showChatWarnings(c tele.Context, chat *tele.Chat, sender *tele.User) error {
	ctx := helpers.BuildContext(c)
	rows, err := h.svc.ChatWarnings(ctx, chat.ID)
	if err != nil {
		return replyAppErr(c, err)
	}
	if len(rows) == 0 {
		return helpers.SendText(c, "No active warnings in this chat.")
	}

	groups := BuildChatSummary(ctx, rows, chat.Title, h.resolver(c))
	pages := paging.PackPages(groups, paging.DefaultPageBudget)
	key := strconv.FormatInt(chat.ID, 10)
	return h.sendPaged(c, sender, h.listPages, nsListPages, key, pages)
}

func (h *Handlers) sendPaged(c tele.Context, sender *tele.User, store *paging.Store[[]string], ns, key string, pages []string) error {
	if len(pages) == 1 {
		return helpers.ReplyMD(c, pages[0])
	}
	store.Put(key, paging.Session[[]string]{
		Requester: sender.ID,
		Total:     len(pages),
		Data:      pages,
	})
	markup := keyboard.Inline(paging.NavRow(ns, key, 1, len(pages), 1, paging.DefaultNavLabels))
	return helpers.ReplyMD(c, pages[0], markup)
}

// mention renders a user mention, resolving the display name through the
// chat when it is not already known. Resolution failures degrade to a
// plain placeholder label.
func (h *Handlers) mention(c tele.Context, ctx context.Context, id int64, knownName, placeholder string) string {
	if knownName != "" {
		return format.Mention(id, knownName)
	}
	return mentionOr(ctx, h.resolver(c), id, placeholder)
}

// resolver looks display names up through chat membership.
func (h *Handlers) resolver(c tele.Context) NameResolver {
	return func(_ context.Context, id int64) (string, bool) {
		chat := c.Chat()
		if chat == nil || c.Bot() == nil {
			return "", false
		}
		member, err := c.Bot().ChatMemberOf(chat, &tele.User{ID: id})
		if err != nil || member == nil || member.User == nil {
			return "", false
		}
		name := strings.TrimSpace(member.User.FirstName)
		return name, name != ""
	}
}

// replyAppErr surfaces a classified error to the user and passes it on
// for summary logging.
func replyAppErr(c tele.Context, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg := ae.Message
		if ae.Kind == apperr.KindTransient && ae.Err != nil {
			msg = fmt.Sprintf("%s: %v", ae.Message, ae.Err)
		}
		_ = helpers.SendText(c, msg)
		return err
	}
	_ = helpers.SendText(c, "An unexpected error occurred.")
	return err
}
