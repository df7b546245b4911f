package hadith

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/logger"
	coretelegram "github.com/sirajbot/siraj/core/telegram"
	"github.com/sirajbot/siraj/core/telegram/commands"
	"github.com/sirajbot/siraj/core/telegram/helpers"
	"github.com/sirajbot/siraj/core/telegram/keyboard"
	"github.com/sirajbot/siraj/core/telegram/middleware"
	"github.com/sirajbot/siraj/core/telegram/paging"
)

// Callback namespaces.
const (
	nsNav   = "hadith_nav"
	nsSharh = "hadith_sharh"
)

const hsUsage = "يرجى إدخال نص البحث.\n" +
	"مثال: `/hs الصلاة`\n\n" +
	"ملاحظة: أضف الرقم '0' في أي مكان في البحث للحصول على جميع الأحاديث (الضعيفة والصحيحة)."

const (
	searchingText  = "جاري البحث عن الأحاديث..."
	noResultsText  = "لم يتم العثور على أحاديث لهذا البحث.\nحاول استخدام كلمات مفتاحية مختلفة."
	fetchSharhText = "جاري جلب الشرح..."
	sharhFailText  = "فشل في جلب الشرح."
)

var navTexts = paging.Texts{
	Expired:    "انتهت صلاحية نتائج البحث. يرجى البحث مرة أخرى باستخدام /hs",
	NotAllowed: "يمكن لصاحب البحث فقط التنقل بين النتائج.",
	Malformed:  "بيانات غير صحيحة.",
	OutOfRange: "رقم الصفحة غير صحيح.",
}

// ResultSet is the browsable snapshot of one search: results are kept
// raw and rendered lazily per displayed position.
type ResultSet struct {
	Key     string
	Query   string
	Results []Result
}

// Handlers owns the /hs command and its result navigation.
type Handlers struct {
	client   *Client
	sessions *paging.Store[ResultSet]
	nav      *paging.Navigator[ResultSet]
}

// NewHandlers builds the handler set over a search client.
func NewHandlers(client *Client, capacity int) *Handlers {
	h := &Handlers{
		client:   client,
		sessions: paging.NewStore[ResultSet](capacity),
	}
	h.nav = &paging.Navigator[ResultSet]{
		Namespace: nsNav,
		Store:     h.sessions,
		Base:      0,
		Render:    renderResult,
		Labels:    NavLabels,
		Texts:     navTexts,
	}
	return h
}

func renderResult(s paging.Session[ResultSet], position int) (string, [][]keyboard.InlineBtn) {
	rs := s.Data
	r := rs.Results[position]
	return RenderBounded(rs.Query, r, position, s.Total), ExtraRows(r, rs.Key, position)
}

// Register wires the search command and callback namespaces.
func (h *Handlers) Register(reg *coretelegram.Registry) {
	reg.RegisterCommand("/hs", commands.Command{
		Handler:     h.HandleSearch,
		Description: "البحث عن الأحاديث",
	})
	_ = reg.RegisterCallback(nsNav, h.nav.Handle)
	_ = reg.RegisterCallback(nsSharh, h.HandleSharh)
}

// HandleSearch implements /hs. The status message is sent synchronously
// so the same message can be edited into the first result.
func (h *Handlers) HandleSearch(c tele.Context) error {
	msg, sender := c.Message(), c.Sender()
	if msg == nil || sender == nil {
		return nil
	}

	rawQuery := strings.TrimSpace(msg.Payload)
	if rawQuery == "" {
		return helpers.SendMD(c, hsUsage)
	}

	status, err := c.Bot().Reply(msg, searchingText)
	if err != nil {
		return err
	}

	query, allGrades := ExtractGradeFilter(rawQuery)
	ctx := helpers.BuildContext(c)
	logger.SVCHadith.LogAttrs(ctx, slog.LevelInfo, "search initiated",
		slog.String("event", "search.start"),
		slog.Int64("user_id", sender.ID),
		slog.String("query", logger.SanitizeLimit(query, 128)),
		slog.Bool("all_grades", allGrades),
	)

	results, err := h.client.Search(ctx, query, allGrades)
	if err != nil {
		return h.editStatus(c, status,
			fmt.Sprintf("حدث خطأ في الاتصال بالشبكة: %v\nيرجى المحاولة مرة أخرى لاحقاً.", err), nil)
	}
	if len(results) == 0 {
		return h.editStatus(c, status, noResultsText, nil)
	}
	logger.SVCHadith.LogAttrs(ctx, slog.LevelInfo, "search completed",
		slog.String("event", "search.done"),
		slog.Int64("user_id", sender.ID),
		slog.Int("results", len(results)),
	)

	key := fmt.Sprintf("%d_%x", sender.ID, queryHash(rawQuery))
	h.sessions.Put(key, paging.Session[ResultSet]{
		Requester: sender.ID,
		Total:     len(results),
		Data:      ResultSet{Key: key, Query: query, Results: results},
	})

	text := RenderBounded(query, results[0], 0, len(results))
	rows := ExtraRows(results[0], key, 0)
	if nav := paging.NavRow(nsNav, key, 0, len(results), 0, NavLabels); nav != nil {
		rows = append(rows, nav)
	}
	return h.editStatus(c, status, text, keyboard.Inline(rows...))
}

// HandleSharh fetches and posts the extended explanation for a result.
// The explanation arrives as a new message; the browsed result stays.
func (h *Handlers) HandleSharh(c tele.Context) error {
	token := middleware.CallbackToken(c.Callback())
	sharhID, _, _, err := DecodeSharhToken(token)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: navTexts.Malformed, ShowAlert: true})
	}

	_ = c.Respond(&tele.CallbackResponse{Text: fetchSharhText})

	ctx := helpers.BuildContext(c)
	sharh, err := h.client.FetchSharh(ctx, sharhID)
	if err != nil {
		// The callback was already answered above; Telegram ignores a
		// second answer, so the failure goes out as a message.
		logger.SVCHadith.LogAttrs(ctx, slog.LevelWarn, "sharh fetch failed",
			slog.String("event", "sharh.fail"),
			slog.String("sharh_id", sharhID),
			slog.String("err", err.Error()),
		)
		return helpers.SendMD(c, sharhFailText)
	}
	return helpers.SendMD(c, RenderSharh(sharh))
}

func (h *Handlers) editStatus(c tele.Context, status *tele.Message, text string, markup *tele.ReplyMarkup) error {
	var err error
	if markup != nil {
		_, err = c.Bot().Edit(status, text, markup, tele.ModeMarkdown)
	} else {
		_, err = c.Bot().Edit(status, text, tele.ModeMarkdown)
	}
	return err
}

func queryHash(query string) uint64 {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(query))
	return hash.Sum64()
}

// EncodeSharhToken builds the sharh callback token. Unlike navigation
// tokens it carries the sharh id between the namespace and the session
// key: <ns>_<sharhID>_<key>_<position>.
func EncodeSharhToken(sharhID, key string, position int) string {
	return fmt.Sprintf("%s_%s_%s_%d", nsSharh, sharhID, key, position)
}

// DecodeSharhToken reverses EncodeSharhToken. The sharh id is split off
// the left after the namespace; key and position follow the usual
// right-split contract.
func DecodeSharhToken(token string) (sharhID, key string, position int, err error) {
	prefix := nsSharh + "_"
	if !strings.HasPrefix(token, prefix) {
		return "", "", 0, fmt.Errorf("%w: %q lacks namespace %q", paging.ErrMalformedToken, token, nsSharh)
	}
	rest := token[len(prefix):]

	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", 0, fmt.Errorf("%w: %q has no sharh id", paging.ErrMalformedToken, token)
	}
	sharhID = parts[0]

	key, position, err = paging.DecodeToken(nsSharh, prefix+parts[1])
	if err != nil {
		return "", "", 0, err
	}
	return sharhID, key, position, nil
}
