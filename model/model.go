package model

import (
	"context"
	"strings"

	"streambot/config"
)

// Model holds the conversation state shared by the TUI and one-shot mode.
// It is only mutated from the Bubble Tea event loop (or the single caller
// in one-shot mode).
type Model struct {
	Sender     Sender
	Transcript *Transcript

	// Pending counts sends whose reply has not arrived yet. Sends are not
	// serialized: each reply is appended in arrival order.
	Pending int

	ctx    context.Context
	cancel context.CancelFunc
}

func NewModel(sender Sender) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		Sender:     sender,
		Transcript: &Transcript{},
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit trims raw and, when anything is left, appends it as a user
// message. ok is false for empty or whitespace-only input.
func (m *Model) Submit(raw string) (msg Message, ok bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Message{}, false
	}

	msg = NewMessage(RoleUser, text)
	m.Transcript.Append(msg)
	config.Log.Debug().Str("id", msg.ID).Int("len", len(text)).Msg("user message appended")
	return msg, true
}

// AcceptReply appends the bot side of an exchange.
func (m *Model) AcceptReply(reply ReplyMsg) Message {
	if m.Pending > 0 {
		m.Pending--
	}

	ev := config.Log.Debug().
		Str("request_id", reply.RequestID).
		Stringer("outcome", reply.Result.Outcome).
		Int("status", reply.Result.StatusCode)
	if reply.Result.Err != nil {
		ev = ev.Err(reply.Result.Err)
	}
	ev.Msg("reply received")

	msg := NewMessage(RoleBot, reply.Result.Reply)
	m.Transcript.Append(msg)
	return msg
}

// Exchange runs a full submit/send/reply cycle synchronously. It reports
// false, without sending anything, when raw is blank.
func (m *Model) Exchange(raw string) bool {
	msg, ok := m.Submit(raw)
	if !ok {
		return false
	}
	m.Pending++
	m.AcceptReply(m.send(msg))
	return true
}

// Shutdown cancels every request still in flight.
func (m *Model) Shutdown() {
	m.cancel()
}

func (m *Model) send(msg Message) ReplyMsg {
	return ReplyMsg{
		RequestID: msg.ID,
		Result:    m.Sender.Send(m.ctx, msg.Text),
	}
}
