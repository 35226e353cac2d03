package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "streambot/model"
)

// AppView is the host screen. It draws the page the chat widget floats over
// and routes every message to the widget.
type AppView struct {
	dataModel *appmodel.Model
	keys      Keymap
	widget    Widget

	width  int
	height int
	ready  bool
}

func NewAppView(data *appmodel.Model, keys Keymap) AppView {
	return AppView{
		dataModel: data,
		keys:      keys,
		widget:    NewWidget(data, keys),
	}
}

func (a AppView) Init() tea.Cmd {
	return a.widget.Init()
}

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.dataModel.Shutdown()
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.widget, cmd = a.widget.Update(msg)
	return a, cmd
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading..."
	}

	page := a.renderPage()
	if !a.widget.IsOpen() {
		return page
	}

	// The open panel takes the bottom right corner of the screen.
	return lipgloss.Place(a.width, a.height, lipgloss.Right, lipgloss.Bottom, a.widget.View(),
		lipgloss.WithWhitespaceChars(" "))
}

func (a AppView) renderPage() string {
	title := TitleStyle.Render("StreamSavvy")
	tagline := DimStyle.Render("Streaming subscriptions, sorted.")

	var lines []string
	lines = append(lines, title, tagline, "")
	if a.widget.Inert() {
		lines = append(lines, DimStyle.Render("Chat is unavailable."))
	} else {
		lines = append(lines, "Questions about plans or your order? Open the chat.")
	}

	body := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	status := a.renderStatusBar()
	gap := a.height - lipgloss.Height(body) - lipgloss.Height(status)
	if gap < 0 {
		gap = 0
	}
	return body + strings.Repeat("\n", gap+1) + status
}

func (a AppView) renderStatusBar() string {
	var parts []string
	if !a.widget.Inert() {
		parts = append(parts, hint(a.keys.Toggle)...)
	}
	parts = append(parts, hint(a.keys.Quit)...)
	return StatusStyle.Width(a.width).Render(" " + FormatFooter(parts...))
}
