package paging

import (
	"fmt"

	"github.com/sirajbot/siraj/core/telegram/keyboard"
)

// NavLabels holds the button captions used by NavRow.
type NavLabels struct {
	Prev string
	Next string
}

// DefaultNavLabels are plain arrow captions.
var DefaultNavLabels = NavLabels{Prev: "⬅️", Next: "➡️"}

// NavRow builds the navigation row for position within a session of total
// positions starting at base. Edge positions drop the button that would
// walk off the range; the middle button is an inert counter showing the
// position in human terms.
func NavRow(namespace, key string, position, total, base int, labels NavLabels) []keyboard.InlineBtn {
	if total <= 1 {
		return nil
	}
	if labels.Prev == "" {
		labels.Prev = DefaultNavLabels.Prev
	}
	if labels.Next == "" {
		labels.Next = DefaultNavLabels.Next
	}

	var row []keyboard.InlineBtn
	if position > base {
		row = append(row, keyboard.InlineBtn{
			Text: labels.Prev,
			Data: EncodeToken(namespace, key, position-1),
		})
	}
	row = append(row, keyboard.InlineBtn{
		Text: fmt.Sprintf("%d/%d", position-base+1, total),
		Data: EncodeToken(namespace, key, position),
	})
	if position < base+total-1 {
		row = append(row, keyboard.InlineBtn{
			Text: labels.Next,
			Data: EncodeToken(namespace, key, position+1),
		})
	}
	return row
}
