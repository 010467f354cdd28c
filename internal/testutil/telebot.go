package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a telebot context recording what handlers reply.
// Methods it does not override panic through the nil embedded interface.
type FakeContext struct {
	tele.Context

	User      *tele.User
	Msg       *tele.Message
	Cb        *tele.Callback
	MsgText   string
	EditError error

	Sent      []string
	Edited    []string
	Alerts    []string
	Responses int
}

// NewFakeContext creates a text message context from the given user
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User:    &tele.User{ID: userID, Username: "tester"},
		Msg:     &tele.Message{ID: 1, Text: text},
		MsgText: text,
	}
}

// NewFakeCommand creates a command context whose payload follows the command
func NewFakeCommand(userID int64, command, payload string) *FakeContext {
	c := NewFakeContext(userID, command+" "+payload)
	c.Msg.Payload = payload
	return c
}

// NewFakeCallback creates a callback query context for the button unique
func NewFakeCallback(userID int64, unique string) *FakeContext {
	c := NewFakeContext(userID, "")
	c.Cb = &tele.Callback{ID: "cb1", Unique: unique}
	return c
}

func (f *FakeContext) Sender() *tele.User       { return f.User }
func (f *FakeContext) Message() *tele.Message   { return f.Msg }
func (f *FakeContext) Callback() *tele.Callback { return f.Cb }
func (f *FakeContext) Text() string             { return f.MsgText }

func (f *FakeContext) Send(what interface{}, _ ...interface{}) error {
	f.Sent = append(f.Sent, fmt.Sprint(what))
	return nil
}

func (f *FakeContext) Edit(what interface{}, _ ...interface{}) error {
	if f.EditError != nil {
		return f.EditError
	}
	f.Edited = append(f.Edited, fmt.Sprint(what))
	return nil
}

func (f *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.Responses++
	for _, r := range resp {
		if r != nil {
			f.Alerts = append(f.Alerts, r.Text)
		}
	}
	return nil
}

// LastSent returns the most recent message sent, or ""
func (f *FakeContext) LastSent() string {
	if len(f.Sent) == 0 {
		return ""
	}
	return f.Sent[len(f.Sent)-1]
}
