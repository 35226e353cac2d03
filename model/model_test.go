package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streambot/chatbot"
)

// recordingSender answers every message with a fixed result and keeps what
// it was asked to send.
type recordingSender struct {
	result chatbot.Result
	sent   []string
}

func (s *recordingSender) Send(ctx context.Context, text string) chatbot.Result {
	s.sent = append(s.sent, text)
	return s.result
}

func TestSubmitTrimsAndAppends(t *testing.T) {
	m := NewModel(&recordingSender{})

	msg, ok := m.Submit("  Hello \n")

	require.True(t, ok)
	assert.Equal(t, "Hello", msg.Text)
	assert.Equal(t, RoleUser, msg.Role)
	assert.NotEmpty(t, msg.ID)
	require.Equal(t, 1, m.Transcript.Len())
	assert.Equal(t, msg, m.Transcript.Messages()[0])
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	for _, raw := range []string{"", " ", "\n\t  ", "\r\n"} {
		m := NewModel(&recordingSender{})
		_, ok := m.Submit(raw)
		assert.False(t, ok, "input %q", raw)
		assert.Equal(t, 0, m.Transcript.Len(), "input %q", raw)
	}
}

func TestSendCmdDeliversReply(t *testing.T) {
	sender := &recordingSender{result: chatbot.Result{Reply: "Hi there", Outcome: chatbot.OutcomeReply}}
	m := NewModel(sender)

	msg, ok := m.Submit("Hello")
	require.True(t, ok)
	cmd := m.SendCmd(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.Pending)

	reply, ok := cmd().(ReplyMsg)
	require.True(t, ok)
	assert.Equal(t, msg.ID, reply.RequestID)
	assert.Equal(t, []string{"Hello"}, sender.sent)

	bot := m.AcceptReply(reply)
	assert.Equal(t, 0, m.Pending)
	assert.Equal(t, RoleBot, bot.Role)
	assert.Equal(t, "Hi there", bot.Text)

	msgs := m.Transcript.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Hello", msgs[0].Text)
	assert.Equal(t, "Hi there", msgs[1].Text)
}

func TestRepliesAppendInArrivalOrder(t *testing.T) {
	m := NewModel(&recordingSender{})

	first, _ := m.Submit("first")
	m.SendCmd(first)
	second, _ := m.Submit("second")
	m.SendCmd(second)
	assert.Equal(t, 2, m.Pending)

	// second reply lands before the first
	m.AcceptReply(ReplyMsg{RequestID: second.ID, Result: chatbot.Result{Reply: "re: second"}})
	m.AcceptReply(ReplyMsg{RequestID: first.ID, Result: chatbot.Result{Reply: "re: first"}})

	var texts []string
	for _, msg := range m.Transcript.Messages() {
		texts = append(texts, msg.Text)
	}
	assert.Equal(t, []string{"first", "second", "re: second", "re: first"}, texts)
	assert.Equal(t, 0, m.Pending)
}

func TestExchange(t *testing.T) {
	sender := &recordingSender{result: chatbot.Result{Reply: chatbot.MsgNoReply, Outcome: chatbot.OutcomeNoReply}}
	m := NewModel(sender)

	assert.False(t, m.Exchange("   "))
	assert.Empty(t, sender.sent)

	assert.True(t, m.Exchange(" Hi "))
	assert.Equal(t, []string{"Hi"}, sender.sent)
	msgs := m.Transcript.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chatbot.MsgNoReply, msgs[1].Text)
	assert.Equal(t, 0, m.Pending)
}

func TestShutdownCancelsInFlight(t *testing.T) {
	var seen error
	m := NewModel(SenderFunc(func(ctx context.Context, text string) chatbot.Result {
		<-ctx.Done()
		seen = ctx.Err()
		return chatbot.Result{Reply: chatbot.MsgGenericFailure, Outcome: chatbot.OutcomeNetworkError, Err: ctx.Err()}
	}))

	msg, _ := m.Submit("Hi")
	cmd := m.SendCmd(msg)
	m.Shutdown()

	reply := cmd().(ReplyMsg)
	assert.True(t, errors.Is(seen, context.Canceled))
	assert.Equal(t, chatbot.MsgGenericFailure, reply.Result.Reply)
}

func TestYankCommands(t *testing.T) {
	var copied []string
	orig := WriteClipboard
	WriteClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { WriteClipboard = orig })

	m := NewModel(&recordingSender{})
	assert.Nil(t, m.YankLastReply())
	assert.Nil(t, m.YankConversation())

	m.Exchange("Hello")
	m.AcceptReply(ReplyMsg{Result: chatbot.Result{Reply: "newest"}})

	yanked := m.YankLastReply()().(YankedMsg)
	assert.NoError(t, yanked.Err)
	assert.Equal(t, "reply", yanked.What)

	m.YankConversation()()
	require.Len(t, copied, 2)
	assert.Equal(t, "newest", copied[0])
	assert.Contains(t, copied[1], "You:\nHello")
	assert.Contains(t, copied[1], "StreamBot:\nnewest")
}
