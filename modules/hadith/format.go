package hadith

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/sirajbot/siraj/core/telegram/keyboard"
	"github.com/sirajbot/siraj/core/telegram/paging"
)

// Rendering limits. The full render is swapped for the bounded one when
// it would not fit in a single message.
const (
	renderLimit  = 4000
	bodyCap      = 500
	sharhCap     = 4000
	headerDivide = "━━━━━━━━━━━━━━━━━━━━━\n\n"
)

// Arabic UI strings.
const (
	labelPrev      = "السابق"
	labelNext      = "التالي"
	labelSimilar   = "أحاديث مشابهة"
	labelSahih     = "الحديث الصحيح"
	labelUsul      = "أصول الحديث"
	labelSharh     = "عرض الشرح"
	bodyTruncNote  = "\n*[تم اختصار نص الحديث بسبب الطول]*"
	sharhTruncNote = "\n\n*[تم اختصار الشرح بسبب الطول]*"
	sharhMissing   = "الشرح غير متوفر."
)

// NavLabels are the Arabic previous/next captions.
var NavLabels = paging.NavLabels{Prev: labelPrev, Next: labelNext}

var (
	htmlTagRE    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// CleanBody strips markup tags and collapses whitespace in a hadith body.
func CleanBody(s string) string {
	s = htmlTagRE.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// RenderItem renders one result in full at a given position.
func RenderItem(query string, r Result, index, total int) string {
	return render(query, r, index, total, 0)
}

// RenderBounded renders one result, degrading to a truncated body when
// the full render would exceed the message limit.
func RenderBounded(query string, r Result, index, total int) string {
	full := render(query, r, index, total, 0)
	if len([]rune(full)) <= renderLimit {
		return full
	}
	return render(query, r, index, total, bodyCap)
}

func render(query string, r Result, index, total, bodyLimit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*البحث:* `%s`\n", query)
	fmt.Fprintf(&b, "*النتيجة %d من %d*\n", index+1, total)
	b.WriteString(headerDivide)

	body := CleanBody(r.Hadith)
	if body == "" {
		body = "غير متوفر"
	}
	truncated := false
	if bodyLimit > 0 {
		if runes := []rune(body); len(runes) > bodyLimit {
			body = string(runes[:bodyLimit]) + "..."
			truncated = true
		}
	}
	b.WriteString(body)
	b.WriteString("\n\n")

	writeField(&b, "الراوي", r.Rawi)
	writeField(&b, "المحدث", r.Mohdith)
	if bodyLimit == 0 {
		writeField(&b, "الكتاب", r.Book)
		writeField(&b, "المرجع", r.NumberOrPage)
	}
	writeField(&b, "الدرجة", r.Grade)
	if bodyLimit == 0 {
		writeField(&b, "التوضيح", r.ExplainGrade)
	}

	if truncated {
		b.WriteString(bodyTruncNote)
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "*%s:* %s\n", label, value)
}

// SafeURL accepts absolute http(s) URLs only; the API marks missing
// links with "#" placeholders.
func SafeURL(raw string) bool {
	if raw == "" || raw == "#" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ExtraRows builds the result-specific keyboard rows: direct links to
// related hadiths and, when available, the sharh callback button.
func ExtraRows(r Result, key string, index int) [][]keyboard.InlineBtn {
	var rows [][]keyboard.InlineBtn

	var info []keyboard.InlineBtn
	if r.HasSimilarHadith && SafeURL(r.SimilarHadithDorar) {
		info = append(info, keyboard.InlineBtn{Text: labelSimilar, URL: r.SimilarHadithDorar})
	}
	if r.HasAlternateHadithSahih && SafeURL(r.AlternateHadithSahihDorar) {
		info = append(info, keyboard.InlineBtn{Text: labelSahih, URL: r.AlternateHadithSahihDorar})
	}
	if r.HasUsulHadith && SafeURL(r.UsulHadithDorar) {
		info = append(info, keyboard.InlineBtn{Text: labelUsul, URL: r.UsulHadithDorar})
	}
	// Arabic link captions are wide; two per row keeps them readable.
	rows = append(rows, keyboard.Chunk(info, 2)...)

	if r.HasSharhMetadata && r.SharhMetadata != nil && r.SharhMetadata.IsContainSharh {
		if id := r.SharhMetadata.ID.String(); id != "" {
			rows = append(rows, []keyboard.InlineBtn{{
				Text: labelSharh,
				Data: EncodeSharhToken(id, key, index),
			}})
		}
	}
	return rows
}

// RenderSharh formats a fetched explanation, truncated to fit a message.
func RenderSharh(sharh string) string {
	if strings.TrimSpace(sharh) == "" {
		sharh = sharhMissing
	}
	msg := "*شرح الحديث:*\n\n" + sharh
	if runes := []rune(msg); len(runes) > sharhCap {
		msg = string(runes[:sharhCap]) + sharhTruncNote
	}
	return msg
}
