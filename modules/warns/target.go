package warns

import (
	"errors"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Target is the user a moderation command acts on.
type Target struct {
	ID   int64
	Name string
}

// ErrNoTarget reports a moderation command with no resolvable subject.
var ErrNoTarget = errors.New("warns: no target user")

// ErrUsernameTarget reports a bare @username argument. The Bot API
// cannot resolve arbitrary usernames to ids, so the caller should ask
// for a reply or a numeric id instead.
var ErrUsernameTarget = errors.New("warns: username target not resolvable")

// ExtractTarget resolves the subject of a moderation command from, in
// order of preference, the replied-to message, an inline text mention,
// or a leading numeric id argument. The second return value is the
// remaining free text of the command.
func ExtractTarget(c tele.Context) (Target, string, error) {
	msg := c.Message()
	if msg == nil {
		return Target{}, "", ErrNoTarget
	}
	payload := strings.TrimSpace(msg.Payload)

	if msg.ReplyTo != nil && msg.ReplyTo.Sender != nil {
		from := msg.ReplyTo.Sender
		return Target{ID: from.ID, Name: from.FirstName}, payload, nil
	}

	// Text mentions carry the user object inline. The mention itself is
	// the first token of the payload.
	for _, e := range msg.Entities {
		if e.Type == tele.EntityTMention && e.User != nil {
			return Target{ID: e.User.ID, Name: e.User.FirstName}, restAfterFirst(payload), nil
		}
	}

	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return Target{}, "", ErrNoTarget
	}
	if id, err := strconv.ParseInt(fields[0], 10, 64); err == nil && id != 0 {
		return Target{ID: id}, strings.Join(fields[1:], " "), nil
	}
	if strings.HasPrefix(fields[0], "@") {
		return Target{}, "", ErrUsernameTarget
	}
	return Target{}, "", ErrNoTarget
}

func restAfterFirst(payload string) string {
	fields := strings.Fields(payload)
	if len(fields) <= 1 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
