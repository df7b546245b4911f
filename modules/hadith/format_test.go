package hadith

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirajbot/siraj/core/telegram/paging"
)

func TestCleanBody(t *testing.T) {
	in := "<p>عن   أبي هريرة</p>\n\n<b>قال</b>"
	assert.Equal(t, "عن أبي هريرة قال", CleanBody(in))
}

func TestRenderItemFields(t *testing.T) {
	r := Result{
		Hadith:       "نص الحديث",
		Rawi:         "أبو هريرة",
		Mohdith:      "البخاري",
		Book:         "صحيح البخاري",
		NumberOrPage: "52",
		Grade:        "صحيح",
	}
	text := RenderItem("الصلاة", r, 0, 15)

	assert.Contains(t, text, "`الصلاة`")
	assert.Contains(t, text, "النتيجة 1 من 15")
	assert.Contains(t, text, "نص الحديث")
	assert.Contains(t, text, "الراوي")
	assert.Contains(t, text, "الكتاب")
	assert.Contains(t, text, "المرجع")
	assert.NotContains(t, text, "التوضيح")
}

func TestRenderBoundedTruncatesLongBody(t *testing.T) {
	r := Result{Hadith: strings.Repeat("م", renderLimit+100)}
	text := RenderBounded("q", r, 2, 15)

	assert.LessOrEqual(t, len([]rune(text)), renderLimit)
	assert.Contains(t, text, bodyTruncNote)
	assert.Contains(t, text, "النتيجة 3 من 15")
}

func TestRenderBoundedKeepsShortBody(t *testing.T) {
	r := Result{Hadith: "قصير"}
	text := RenderBounded("q", r, 0, 1)
	assert.NotContains(t, text, bodyTruncNote)
	assert.Contains(t, text, "قصير")
}

func TestSafeURL(t *testing.T) {
	assert.True(t, SafeURL("https://dorar.net/h/abc"))
	assert.True(t, SafeURL("http://dorar.net/h/abc"))
	assert.False(t, SafeURL("#"))
	assert.False(t, SafeURL(""))
	assert.False(t, SafeURL("javascript:alert(1)"))
	assert.False(t, SafeURL("ftp://dorar.net/x"))
}

func TestExtraRowsLinksAndSharh(t *testing.T) {
	id := json.Number("4573")
	r := Result{
		HasSimilarHadith:        true,
		SimilarHadithDorar:      "https://dorar.net/h/similar",
		HasAlternateHadithSahih: true,
		// Placeholder link must be dropped.
		AlternateHadithSahihDorar: "#",
		HasSharhMetadata:          true,
		SharhMetadata:             &SharhMetadata{ID: id, IsContainSharh: true},
	}

	rows := ExtraRows(r, "7_abc", 3)
	require.Len(t, rows, 2)

	require.Len(t, rows[0], 1)
	assert.Equal(t, "https://dorar.net/h/similar", rows[0][0].URL)

	require.Len(t, rows[1], 1)
	assert.Equal(t, "hadith_sharh_4573_7_abc_3", rows[1][0].Data)
}

func TestExtraRowsEmpty(t *testing.T) {
	assert.Nil(t, ExtraRows(Result{}, "k", 0))
}

func TestSharhTokenRoundTrip(t *testing.T) {
	token := EncodeSharhToken("4573", "7_deadbeef", 14)

	id, key, pos, err := DecodeSharhToken(token)
	require.NoError(t, err)
	assert.Equal(t, "4573", id)
	assert.Equal(t, "7_deadbeef", key)
	assert.Equal(t, 14, pos)
}

func TestSharhTokenMalformed(t *testing.T) {
	for _, token := range []string{
		"hadith_nav_k_1",
		"hadith_sharh_",
		"hadith_sharh_4573",
		"hadith_sharh_4573_key_x",
	} {
		_, _, _, err := DecodeSharhToken(token)
		assert.ErrorIs(t, err, paging.ErrMalformedToken, token)
	}
}

func TestRenderSharhTruncates(t *testing.T) {
	long := strings.Repeat("ش", sharhCap+10)
	msg := RenderSharh(long)
	assert.Contains(t, msg, sharhTruncNote)
	assert.LessOrEqual(t, len([]rune(msg)), sharhCap+len([]rune(sharhTruncNote)))
}

func TestRenderSharhMissing(t *testing.T) {
	assert.Contains(t, RenderSharh("  "), sharhMissing)
}

func TestNavigationBoundsForFullResultSet(t *testing.T) {
	// 15 results browsed item-at-a-time: positions 0..14 are reachable,
	// the edges drop the button that would leave the range.
	first := paging.NavRow(nsNav, "7_h", 0, 15, 0, NavLabels)
	require.Len(t, first, 2)
	assert.Equal(t, "التالي", first[1].Text)

	last := paging.NavRow(nsNav, "7_h", 14, 15, 0, NavLabels)
	require.Len(t, last, 2)
	assert.Equal(t, "السابق", last[0].Text)
	for _, btn := range last {
		_, pos, err := paging.DecodeToken(nsNav, btn.Data)
		require.NoError(t, err)
		assert.Less(t, pos, 15)
	}
}
