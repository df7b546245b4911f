package paging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/sirajbot/siraj/core/apperr"
	"github.com/sirajbot/siraj/core/telegram/keyboard"
)

// navContext fakes the few tele.Context methods Handle touches.
type navContext struct {
	tele.Context
	data   string
	sender *tele.User

	edited    bool
	editText  string
	responses []*tele.CallbackResponse
}

func (f *navContext) Callback() *tele.Callback { return &tele.Callback{Data: f.data} }
func (f *navContext) Sender() *tele.User       { return f.sender }

func (f *navContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		resp = []*tele.CallbackResponse{{}}
	}
	f.responses = append(f.responses, resp...)
	return nil
}

func (f *navContext) Edit(what interface{}, _ ...interface{}) error {
	f.edited = true
	if s, ok := what.(string); ok {
		f.editText = s
	}
	return nil
}

func (f *navContext) lastResponse(t *testing.T) *tele.CallbackResponse {
	t.Helper()
	require.NotEmpty(t, f.responses)
	return f.responses[len(f.responses)-1]
}

func pagesNavigator(t *testing.T) (*Navigator[[]string], *Store[[]string]) {
	t.Helper()
	store := NewStore[[]string](8)
	store.Put("10_42", Session[[]string]{
		Requester: 7,
		Total:     2,
		Data:      []string{"page one", "page two"},
	})
	nav := &Navigator[[]string]{
		Namespace: "warns_user",
		Store:     store,
		Base:      1,
		Render: func(s Session[[]string], position int) (string, [][]keyboard.InlineBtn) {
			return s.Data[position-1], nil
		},
	}
	return nav, store
}

func TestNavigatorRejectsForeignRequester(t *testing.T) {
	nav, _ := pagesNavigator(t)
	c := &navContext{
		data:   EncodeToken("warns_user", "10_42", 2),
		sender: &tele.User{ID: 999},
	}

	err := nav.Handle(c)
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	assert.False(t, c.edited)

	resp := c.lastResponse(t)
	assert.Equal(t, DefaultTexts.NotAllowed, resp.Text)
	assert.True(t, resp.ShowAlert)
}

func TestNavigatorRejectsMissingSender(t *testing.T) {
	nav, _ := pagesNavigator(t)
	c := &navContext{data: EncodeToken("warns_user", "10_42", 1)}

	err := nav.Handle(c)
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	assert.False(t, c.edited)
	assert.Equal(t, DefaultTexts.NotAllowed, c.lastResponse(t).Text)
}

func TestNavigatorRejectsOutOfRange(t *testing.T) {
	nav, _ := pagesNavigator(t)
	for _, position := range []int{0, 3, -1} {
		c := &navContext{
			data:   EncodeToken("warns_user", "10_42", position),
			sender: &tele.User{ID: 7},
		}
		require.NoError(t, nav.Handle(c), "position %d", position)
		assert.False(t, c.edited, "position %d", position)
		assert.Equal(t, DefaultTexts.OutOfRange, c.lastResponse(t).Text, "position %d", position)
	}
}

func TestNavigatorExpiredSession(t *testing.T) {
	nav, store := pagesNavigator(t)
	store.Delete("10_42")

	c := &navContext{
		data:   EncodeToken("warns_user", "10_42", 1),
		sender: &tele.User{ID: 7},
	}
	require.NoError(t, nav.Handle(c))
	assert.False(t, c.edited)

	resp := c.lastResponse(t)
	assert.Equal(t, DefaultTexts.Expired, resp.Text)
	assert.True(t, resp.ShowAlert)
}

func TestNavigatorMalformedToken(t *testing.T) {
	nav, _ := pagesNavigator(t)
	c := &navContext{
		data:   "warns_user_10_42_",
		sender: &tele.User{ID: 7},
	}
	require.NoError(t, nav.Handle(c))
	assert.False(t, c.edited)
	assert.Equal(t, DefaultTexts.Malformed, c.lastResponse(t).Text)
}

func TestNavigatorEditsAndAcksValidPosition(t *testing.T) {
	nav, _ := pagesNavigator(t)
	for position := 1; position <= 2; position++ {
		c := &navContext{
			data:   EncodeToken("warns_user", "10_42", position),
			sender: &tele.User{ID: 7},
		}
		require.NoError(t, nav.Handle(c))
		assert.True(t, c.edited, "position %d", position)
		assert.Equal(t, fmt.Sprintf("page %s", []string{"one", "two"}[position-1]), c.editText)

		// Plain ack, no alert text.
		resp := c.lastResponse(t)
		assert.Empty(t, resp.Text)
		assert.False(t, resp.ShowAlert)
	}
}
