package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"streambot/config"
	appmodel "streambot/model"
)

const (
	maxPanelWidth  = 64
	maxPanelHeight = 22
	minPanelWidth  = 24
	minPanelHeight = 8

	// header, input, footer and the panel border
	panelChromeLines = 5
)

// Widget is the floating chat panel. It starts closed; the toggle binding
// opens it and focuses the input, send posts the input to the chatbot and
// every reply is appended to the transcript in arrival order.
type Widget struct {
	data *appmodel.Model
	keys Keymap

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	open   bool
	width  int
	height int

	status    string
	statusErr bool
}

func NewWidget(data *appmodel.Model, keys Keymap) Widget {
	ti := textinput.New()
	ti.Placeholder = "Ask StreamBot about plans, prices or your order..."
	ti.Prompt = "> "
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = BotStyle

	w := Widget{
		data:     data,
		keys:     keys,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
	return w.SetSize(80, 24)
}

// Inert reports whether the widget has no toggle control. An inert widget
// ignores every message and draws nothing.
func (w Widget) Inert() bool {
	return !w.keys.Toggle.Enabled()
}

func (w Widget) IsOpen() bool {
	return w.open
}

func (w Widget) Init() tea.Cmd {
	return nil
}

// Toggle flips visibility and focuses the input when the panel opens.
func (w Widget) Toggle() (Widget, tea.Cmd) {
	if w.Inert() {
		return w, nil
	}
	if w.open {
		return w.Close(), nil
	}

	w.open = true
	w.setStatus("", false)
	w.refresh()
	config.Log.Debug().Msg("chat panel opened")
	return w, w.input.Focus()
}

// Close hides the panel. Closing a closed panel does nothing.
func (w Widget) Close() Widget {
	if !w.open {
		return w
	}
	w.open = false
	w.input.Blur()
	config.Log.Debug().Msg("chat panel closed")
	return w
}

// Submit sends whatever is in the input. Blank input is ignored without
// touching the transcript or the network.
func (w Widget) Submit() (Widget, tea.Cmd) {
	msg, ok := w.data.Submit(w.input.Value())
	if !ok {
		return w, nil
	}

	w.input.SetValue("")
	w.setStatus("", false)
	w.refresh()

	cmds := []tea.Cmd{w.data.SendCmd(msg)}
	if w.data.Pending == 1 {
		cmds = append(cmds, w.spinner.Tick)
	}
	return w, tea.Batch(cmds...)
}

// SetSize fits the panel into a screen of the given size.
func (w Widget) SetSize(screenWidth, screenHeight int) Widget {
	w.width = clamp(screenWidth-4, minPanelWidth, maxPanelWidth)
	w.height = clamp(screenHeight-4, minPanelHeight, maxPanelHeight)

	inner := w.innerWidth()
	w.viewport.Width = inner
	w.viewport.Height = w.height - panelChromeLines
	w.input.Width = inner - len(w.input.Prompt) - 1
	w.refresh()
	return w
}

func (w Widget) innerWidth() int {
	return w.width - PanelStyle.GetHorizontalFrameSize()
}

// setStatus replaces the footer hints until the next open or send.
func (w *Widget) setStatus(text string, isErr bool) {
	w.status = text
	w.statusErr = isErr
}

// refresh re-renders the transcript and keeps the newest bubble in view.
func (w *Widget) refresh() {
	w.viewport.SetContent(renderTranscript(w.data.Transcript.Messages(), w.viewport.Width))
	w.viewport.GotoBottom()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
