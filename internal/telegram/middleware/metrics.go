package middleware

import (
	tele "gopkg.in/telebot.v4"
)

const (
	keyMsgCount = "msg_count"
	keyMsgKB    = "msg_kb"
)

// countingContext wraps tele.Context so outbound sends can be tallied for
// the per-update summary line.
type countingContext struct{ tele.Context }

func (cc countingContext) tally(err error, opts []interface{}) error {
	if err != nil {
		return err
	}
	n, _ := cc.Get(keyMsgCount).(int)
	cc.Set(keyMsgCount, n+1)
	if withKeyboard(opts) {
		cc.Set(keyMsgKB, true)
	}
	return nil
}

func withKeyboard(opts []interface{}) bool {
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

func (cc countingContext) Send(what interface{}, opts ...interface{}) error {
	return cc.tally(cc.Context.Send(what, opts...), opts)
}

func (cc countingContext) Reply(what interface{}, opts ...interface{}) error {
	return cc.tally(cc.Context.Reply(what, opts...), opts)
}

func (cc countingContext) Edit(what interface{}, opts ...interface{}) error {
	return cc.tally(cc.Context.Edit(what, opts...), opts)
}

func (cc countingContext) EditOrSend(what interface{}, opts ...interface{}) error {
	return cc.tally(cc.Context.EditOrSend(what, opts...), opts)
}

func (cc countingContext) EditOrReply(what interface{}, opts ...interface{}) error {
	return cc.tally(cc.Context.EditOrReply(what, opts...), opts)
}

// MessageMetricsMiddleware counts messages sent while handling an update
// and whether any of them carried a keyboard.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(keyMsgCount, 0)
		c.Set(keyMsgKB, false)
		return next(countingContext{Context: c})
	}
}

// GetCounters reads the send tallies back from the context store.
func GetCounters(c tele.Context) (int, bool) {
	n, _ := c.Get(keyMsgCount).(int)
	kb, _ := c.Get(keyMsgKB).(bool)
	return n, kb
}
