package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavRowSinglePosition(t *testing.T) {
	assert.Nil(t, NavRow("ns", "k", 1, 1, 1, NavLabels{}))
	assert.Nil(t, NavRow("ns", "k", 0, 0, 0, NavLabels{}))
}

func TestNavRowFirstPage(t *testing.T) {
	row := NavRow("warns_list", "-1001", 1, 3, 1, NavLabels{})
	require.Len(t, row, 2)
	assert.Equal(t, "1/3", row[0].Text)
	assert.Equal(t, "warns_list_-1001_1", row[0].Data)
	assert.Equal(t, "warns_list_-1001_2", row[1].Data)
}

func TestNavRowMiddlePage(t *testing.T) {
	row := NavRow("warns_list", "-1001", 2, 3, 1, NavLabels{})
	require.Len(t, row, 3)
	assert.Equal(t, "warns_list_-1001_1", row[0].Data)
	assert.Equal(t, "2/3", row[1].Text)
	assert.Equal(t, "warns_list_-1001_3", row[2].Data)
}

func TestNavRowLastPage(t *testing.T) {
	row := NavRow("warns_list", "-1001", 3, 3, 1, NavLabels{})
	require.Len(t, row, 2)
	assert.Equal(t, "warns_list_-1001_2", row[0].Data)
	assert.Equal(t, "3/3", row[1].Text)
}

func TestNavRowZeroBased(t *testing.T) {
	row := NavRow("hadith", "7_abc", 0, 15, 0, NavLabels{Prev: "السابق", Next: "التالي"})
	require.Len(t, row, 2)
	assert.Equal(t, "1/15", row[0].Text)
	assert.Equal(t, "التالي", row[1].Text)
	assert.Equal(t, "hadith_7_abc_1", row[1].Data)

	last := NavRow("hadith", "7_abc", 14, 15, 0, NavLabels{Prev: "السابق", Next: "التالي"})
	require.Len(t, last, 2)
	assert.Equal(t, "السابق", last[0].Text)
	assert.Equal(t, "hadith_7_abc_13", last[0].Data)
	assert.Equal(t, "15/15", last[1].Text)
}
