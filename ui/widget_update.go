package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"streambot/config"
	appmodel "streambot/model"
)

func (w Widget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	if w.Inert() {
		return w, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return w.SetSize(msg.Width, msg.Height), nil

	case appmodel.ReplyMsg:
		w.data.AcceptReply(msg)
		w.refresh()
		return w, nil

	case appmodel.YankedMsg:
		if msg.Err != nil {
			config.Log.Debug().Err(msg.Err).Str("what", msg.What).Msg("clipboard write failed")
			w.setStatus("Clipboard unavailable", true)
		} else if msg.What == "reply" {
			w.setStatus("Reply copied", false)
		} else {
			w.setStatus("Conversation copied", false)
		}
		return w, nil

	case spinner.TickMsg:
		if w.data.Pending == 0 {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	return w, nil
}

func (w Widget) handleKey(msg tea.KeyMsg) (Widget, tea.Cmd) {
	if key.Matches(msg, w.keys.Toggle) {
		return w.Toggle()
	}

	// Everything else belongs to the open panel.
	if !w.open {
		return w, nil
	}

	switch {
	case key.Matches(msg, w.keys.Close):
		return w.Close(), nil

	case key.Matches(msg, w.keys.Send):
		return w.Submit()

	case key.Matches(msg, w.keys.YankReply):
		return w, w.data.YankLastReply()

	case key.Matches(msg, w.keys.YankAll):
		return w, w.data.YankConversation()

	case key.Matches(msg, w.keys.ScrollUp):
		w.viewport.LineUp(1)
		return w, nil

	case key.Matches(msg, w.keys.ScrollDown):
		w.viewport.LineDown(1)
		return w, nil

	case key.Matches(msg, w.keys.PageUp):
		w.viewport.ViewUp()
		return w, nil

	case key.Matches(msg, w.keys.PageDown):
		w.viewport.ViewDown()
		return w, nil
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}
