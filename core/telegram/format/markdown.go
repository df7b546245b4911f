package format

import (
	"fmt"
	"regexp"
)

var mdV1Specials = regexp.MustCompile("([_*`\\[])")

// EscapeMarkdown escapes special characters for Telegram Markdown (V1).
func EscapeMarkdown(text string) string {
	return mdV1Specials.ReplaceAllString(text, `\$1`)
}

// Mention renders a Markdown link that mentions a user by id.
// The display name is escaped so it cannot break the link markup.
func Mention(id int64, name string) string {
	if name == "" {
		name = fmt.Sprintf("User %d", id)
	}
	return fmt.Sprintf("[%s](tg://user?id=%d)", EscapeMarkdown(name), id)
}
