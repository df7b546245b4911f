package middleware

import (
	tele "gopkg.in/telebot.v4"
)

const (
	ctxKeyMessages = "messages"
	ctxKeyKeyboard = "kb"
)

// countingContext wraps tele.Context so that every outgoing message
// produced by a handler bumps the per-update counters read later by
// the summary log line.
type countingContext struct{ tele.Context }

func (cc countingContext) record(opts []interface{}) {
	cc.Set(ctxKeyMessages, ctxInt(cc, ctxKeyMessages)+1)
	if optsCarryKeyboard(opts) {
		cc.Set(ctxKeyKeyboard, true)
	}
}

func (cc countingContext) Send(what interface{}, opts ...interface{}) error {
	if err := cc.Context.Send(what, opts...); err != nil {
		return err
	}
	cc.record(opts)
	return nil
}

func (cc countingContext) Reply(what interface{}, opts ...interface{}) error {
	if err := cc.Context.Reply(what, opts...); err != nil {
		return err
	}
	cc.record(opts)
	return nil
}

// Edits count as outgoing messages too.
func (cc countingContext) Edit(what interface{}, opts ...interface{}) error {
	if err := cc.Context.Edit(what, opts...); err != nil {
		return err
	}
	cc.record(opts)
	return nil
}

func (cc countingContext) EditOrSend(what interface{}, opts ...interface{}) error {
	if err := cc.Context.EditOrSend(what, opts...); err != nil {
		return err
	}
	cc.record(opts)
	return nil
}

func optsCarryKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func ctxInt(c tele.Context, key string) int {
	if n, ok := c.Get(key).(int); ok {
		return n
	}
	return 0
}

func ctxBool(c tele.Context, key string) bool {
	b, _ := c.Get(key).(bool)
	return b
}

// MessageMetricsMiddleware instruments the context so handlers downstream
// report how many messages they sent and whether any carried a keyboard.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(ctxKeyMessages, 0)
		c.Set(ctxKeyKeyboard, false)
		return next(countingContext{Context: c})
	}
}

// GetCounters reads the message count and keyboard flag back out.
func GetCounters(c tele.Context) (int, bool) {
	return ctxInt(c, ctxKeyMessages), ctxBool(c, ctxKeyKeyboard)
}
