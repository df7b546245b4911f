package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/telegram/commands"
)

func noopHandler(tele.Context) error { return nil }

func TestMatchCallbackLongestNamespaceWins(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("warns", noopHandler))
	require.NoError(t, reg.RegisterCallback("warns_user", noopHandler))

	ns, h, ok := reg.MatchCallback("warns_user_10_42_3")
	require.True(t, ok)
	require.NotNil(t, h)
	require.Equal(t, "warns_user", ns)

	ns, _, ok = reg.MatchCallback("warns_list_10_2")
	require.True(t, ok)
	require.Equal(t, "warns", ns)

	_, _, ok = reg.MatchCallback("hadith_nav_1_abc_0")
	require.False(t, ok)
}

func TestMatchCallbackExactToken(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("noop", noopHandler))

	ns, _, ok := reg.MatchCallback("noop")
	require.True(t, ok)
	require.Equal(t, "noop", ns)

	// A namespace must be followed by the separator to match.
	_, _, ok = reg.MatchCallback("noopish")
	require.False(t, ok)
}

func TestRegisterCallbackRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("hadith_nav", noopHandler))
	require.Error(t, reg.RegisterCallback("hadith_nav", noopHandler))
	require.Error(t, reg.RegisterCallback("", noopHandler))
	require.Error(t, reg.RegisterCallback("x", nil))

	require.Equal(t, []string{"hadith_nav"}, reg.ListCallbacks())
}

func TestListCommandsSortedAndFiltered(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/warns", commands.Command{Handler: noopHandler, Description: "list warnings"})
	reg.RegisterCommand("/hs", commands.Command{Handler: noopHandler, Description: "search hadith"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noopHandler, Description: "internal", Hidden: true})
	reg.RegisterCommand("warn", commands.Command{Handler: noopHandler, Description: "missing slash"})

	visible := reg.ListCommands(true)
	require.Len(t, visible, 2)
	require.Equal(t, "/hs", visible[0].Text)
	require.Equal(t, "/warns", visible[1].Text)

	require.Len(t, reg.ListCommands(false), 3)
}
