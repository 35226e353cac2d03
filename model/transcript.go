package model

import (
	"fmt"
	"strings"
)

// Transcript is the append-only conversation, in send/receive order.
type Transcript struct {
	messages []Message
}

func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy, so callers cannot reorder the transcript.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// LastOf returns the newest message with the given role.
func (t *Transcript) LastOf(role Role) (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == role {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// PlainText formats the whole conversation for the clipboard or a pipe.
func (t *Transcript) PlainText() string {
	var b strings.Builder
	for _, msg := range t.messages {
		b.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
			msg.Timestamp.Format("15:04"),
			msg.Role.Label(),
			msg.Text))
	}
	return b.String()
}
