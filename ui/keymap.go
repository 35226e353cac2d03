package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"streambot/config"
)

// Keymap holds the widget's controls. An unbound Toggle leaves the widget
// inert.
type Keymap struct {
	Toggle     key.Binding
	Close      key.Binding
	Send       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	YankReply  key.Binding
	YankAll    key.Binding
	Quit       key.Binding
}

func NewKeymap(kb *config.KeyBindingsConfig) Keymap {
	if kb == nil {
		kb = config.DefaultKeybindings()
	}

	quit := binding(kb, "quit", "Quit")
	quit.SetKeys(append([]string{"ctrl+c"}, quit.Keys()...)...)
	quit.SetEnabled(true)

	return Keymap{
		Toggle:     binding(kb, "toggle", "Chat"),
		Close:      binding(kb, "close", "Close"),
		Send:       binding(kb, "send", "Send"),
		ScrollUp:   binding(kb, "scroll_up", "Scroll up"),
		ScrollDown: binding(kb, "scroll_down", "Scroll down"),
		PageUp:     binding(kb, "page_up", "Page up"),
		PageDown:   binding(kb, "page_down", "Page down"),
		YankReply:  binding(kb, "yank_last_reply", "Copy reply"),
		YankAll:    binding(kb, "yank_conversation", "Copy chat"),
		Quit:       quit,
	}
}

func binding(kb *config.KeyBindingsConfig, action, desc string) key.Binding {
	k := kb.GetActionKey(action)
	if k == "" {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(k),
		key.WithHelp(kb.DisplayActionKey(action), desc),
	)
}

// hint renders a binding for a footer, or nothing when it is unbound.
func hint(b key.Binding) []string {
	if !b.Enabled() {
		return nil
	}
	return []string{b.Help().Key, b.Help().Desc}
}
