package paging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackPagesEmpty(t *testing.T) {
	assert.Nil(t, PackPages(nil, 100))
	assert.Nil(t, PackPages([]string{"", ""}, 100))
}

func TestPackPagesSingleFit(t *testing.T) {
	pages := PackPages([]string{"alpha", "beta"}, 100)
	require.Len(t, pages, 1)
	assert.Equal(t, "alpha\nbeta", pages[0])
}

func TestPackPagesRespectsBudget(t *testing.T) {
	items := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
	}
	pages := PackPages(items, 85)
	require.Len(t, pages, 2)
	assert.Equal(t, items[0]+"\n"+items[1], pages[0])
	assert.Equal(t, items[2], pages[1])

	for _, p := range pages {
		assert.LessOrEqual(t, len([]rune(p)), 85)
	}
}

func TestPackPagesPreservesOrder(t *testing.T) {
	items := []string{"one", "two", "three", "four"}
	pages := PackPages(items, 9)
	joined := strings.Join(pages, "\n")
	assert.Equal(t, "one\ntwo\nthree\nfour", joined)
}

func TestPackPagesOversizedItemIsolated(t *testing.T) {
	big := strings.Repeat("x", 50)
	pages := PackPages([]string{"small", big, "tiny"}, 20)
	require.Len(t, pages, 3)
	assert.Equal(t, "small", pages[0])
	assert.Equal(t, big, pages[1])
	assert.Equal(t, "tiny", pages[2])
}

func TestPackPagesCountsRunes(t *testing.T) {
	// Each Arabic letter is multiple bytes but a single rune.
	item := strings.Repeat("م", 10)
	pages := PackPages([]string{item, item}, 21)
	require.Len(t, pages, 1)
}

func TestPackPagesZeroBudgetUsesDefault(t *testing.T) {
	pages := PackPages([]string{"a", "b"}, 0)
	require.Len(t, pages, 1)
}
