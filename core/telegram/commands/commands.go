package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// ChatAdminOnly restricts the command to administrators of the chat
	// the command was issued in.
	ChatAdminOnly bool
	Hidden        bool
	Aliases       []string
}
