package warns

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticResolver(names map[int64]string) NameResolver {
	return func(_ context.Context, id int64) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

func testWarning(id, userID, by int64, reason string, at time.Time) Warning {
	return Warning{
		ID: id, ChatID: -100, UserID: userID, WarnedBy: by,
		Reason: reason, WarnedAt: at, Status: StatusActive,
	}
}

func TestBuildUserReport(t *testing.T) {
	at := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	warnings := []Warning{
		testWarning(2, 42, 7, "spam", at),
		testWarning(1, 42, 8, "flood", at.Add(-time.Hour)),
	}
	resolve := staticResolver(map[int64]string{7: "Alice"})

	groups := BuildUserReport(context.Background(), warnings, "[Bob](tg://user?id=42)", resolve)
	require.Len(t, groups, 4)

	assert.Contains(t, groups[0], "Warnings for")
	assert.Contains(t, groups[0], "tg://user?id=42")

	assert.Contains(t, groups[1], "#2 - 2026-05-04 09:30")
	assert.Contains(t, groups[1], "spam")
	assert.Contains(t, groups[1], "tg://user?id=7")

	// Unresolvable admin degrades to a placeholder, not a failure.
	assert.Contains(t, groups[2], "Admin 8")

	assert.Equal(t, "\nTotal active warnings: 2", groups[3])
}

func TestBuildChatSummaryCapsPerUser(t *testing.T) {
	at := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	var warnings []Warning
	for i := int64(0); i < 5; i++ {
		warnings = append(warnings, testWarning(10+i, 42, 7, "repeat offender", at.Add(-time.Duration(i)*time.Minute)))
	}
	warnings = append(warnings, testWarning(20, 43, 7, "minor", at.Add(-time.Hour)))

	groups := BuildChatSummary(context.Background(), warnings, "Test Chat", staticResolver(nil))
	require.Len(t, groups, 3)

	assert.Contains(t, groups[0], "Test Chat")

	first := groups[1]
	assert.Contains(t, first, "User 42")
	assert.Contains(t, first, "(5 warnings)")
	assert.Equal(t, summaryMaxPerUser, strings.Count(first, "#1"))
	assert.Contains(t, first, "... and 2 more")

	assert.Contains(t, groups[2], "Total warnings: 6")
}

func TestBuildChatSummaryTruncatesReason(t *testing.T) {
	long := strings.Repeat("a", summaryReasonCap+20)
	warnings := []Warning{testWarning(1, 42, 7, long, time.Now())}

	groups := BuildChatSummary(context.Background(), warnings, "", staticResolver(nil))
	require.Len(t, groups, 3)
	assert.Contains(t, groups[0], "this chat")
	assert.Contains(t, groups[1], strings.Repeat("a", summaryReasonCap)+"...")
	assert.NotContains(t, groups[1], long)
}

func TestShortenReasonKeepsShort(t *testing.T) {
	assert.Equal(t, "spam", shortenReason("spam"))
}
