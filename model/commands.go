package model

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// WriteClipboard is swapped out in tests; there is no clipboard in CI.
var WriteClipboard = clipboard.WriteAll

// SendCmd counts msg as pending and returns the command that delivers it.
// The reply arrives later as a ReplyMsg.
func (m *Model) SendCmd(msg Message) tea.Cmd {
	m.Pending++
	return func() tea.Msg {
		return m.send(msg)
	}
}

// YankLastReply copies the newest bot reply to the clipboard.
func (m *Model) YankLastReply() tea.Cmd {
	last, ok := m.Transcript.LastOf(RoleBot)
	if !ok {
		return nil
	}
	text := last.Text
	return func() tea.Msg {
		return YankedMsg{What: "reply", Err: WriteClipboard(text)}
	}
}

// YankConversation copies the whole transcript as plain text.
func (m *Model) YankConversation() tea.Cmd {
	if m.Transcript.Len() == 0 {
		return nil
	}
	text := m.Transcript.PlainText()
	return func() tea.Msg {
		return YankedMsg{What: "conversation", Err: WriteClipboard(text)}
	}
}
