package warns

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirajbot/siraj/core/telegram/format"
)

// NameResolver turns a user id into a display name. Resolution is best
// effort: a false return makes the caller fall back to a placeholder.
type NameResolver func(ctx context.Context, id int64) (string, bool)

const (
	fullDateLayout  = "2006-01-02 15:04"
	shortDateLayout = "01-02 15:04"

	// summaryMaxPerUser caps warnings shown per user in the chat summary.
	summaryMaxPerUser = 3
	// summaryReasonCap truncates reasons in the chat summary.
	summaryReasonCap = 50
)

func mentionOr(ctx context.Context, resolve NameResolver, id int64, placeholder string) string {
	if resolve != nil {
		if name, ok := resolve(ctx, id); ok && name != "" {
			return format.Mention(id, name)
		}
	}
	return fmt.Sprintf("%s %d", placeholder, id)
}

// BuildUserReport renders one user's active warnings as line groups for
// page packing. The first group is the header, the last the total line.
func BuildUserReport(ctx context.Context, warnings []Warning, targetMention string, resolve NameResolver) []string {
	groups := make([]string, 0, len(warnings)+2)
	groups = append(groups, fmt.Sprintf("*⚠️ Warnings for %s*\n", targetMention))

	for _, w := range warnings {
		admin := mentionOr(ctx, resolve, w.WarnedBy, "Admin")
		groups = append(groups, fmt.Sprintf(
			"#%d - %s\n*Reason:* %s\n*By:* %s\n",
			w.ID,
			w.WarnedAt.Format(fullDateLayout),
			format.EscapeMarkdown(w.Reason),
			admin,
		))
	}

	groups = append(groups, fmt.Sprintf("\nTotal active warnings: %d", len(warnings)))
	return groups
}

// BuildChatSummary renders the chat-wide warning overview as line groups
// for page packing. Users keep the order of their newest warning; each
// user shows at most a few entries with shortened reasons.
func BuildChatSummary(ctx context.Context, warnings []Warning, chatTitle string, resolve NameResolver) []string {
	if chatTitle == "" {
		chatTitle = "this chat"
	}

	var userOrder []int64
	perUser := make(map[int64][]Warning)
	for _, w := range warnings {
		if _, seen := perUser[w.UserID]; !seen {
			userOrder = append(userOrder, w.UserID)
		}
		perUser[w.UserID] = append(perUser[w.UserID], w)
	}

	groups := []string{fmt.Sprintf("*⚠️ All Active Warnings in %s*\n", format.EscapeMarkdown(chatTitle))}

	for _, userID := range userOrder {
		userWarns := perUser[userID]
		user := mentionOr(ctx, resolve, userID, "User")

		var b strings.Builder
		fmt.Fprintf(&b, "👤 *%s* (%d warnings):\n", user, len(userWarns))

		shown := userWarns
		if len(shown) > summaryMaxPerUser {
			shown = shown[:summaryMaxPerUser]
		}
		for _, w := range shown {
			admin := mentionOr(ctx, resolve, w.WarnedBy, "Admin")
			fmt.Fprintf(&b, "  #%d - %s by %s: %s\n",
				w.ID,
				w.WarnedAt.Format(shortDateLayout),
				admin,
				format.EscapeMarkdown(shortenReason(w.Reason)),
			)
		}
		if len(userWarns) > summaryMaxPerUser {
			fmt.Fprintf(&b, "  ... and %d more\n", len(userWarns)-summaryMaxPerUser)
		}
		groups = append(groups, b.String())
	}

	groups = append(groups,
		fmt.Sprintf("Total warnings: %d\nUse /warns @user for detailed user warnings", len(warnings)))
	return groups
}

func shortenReason(reason string) string {
	r := []rune(reason)
	if len(r) <= summaryReasonCap {
		return reason
	}
	return string(r[:summaryReasonCap]) + "..."
}
