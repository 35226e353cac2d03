package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmodel "streambot/model"
	"streambot/render"
)

const panelTitle = "StreamBot"

// View draws the panel, or nothing while it is closed or inert.
func (w Widget) View() string {
	if w.Inert() || !w.open {
		return ""
	}

	inner := w.innerWidth()
	body := lipgloss.JoinVertical(lipgloss.Left,
		w.renderHeader(inner),
		w.viewport.View(),
		w.input.View(),
		w.renderFooter(inner),
	)
	return PanelStyle.Width(inner).Render(body)
}

func (w Widget) renderHeader(width int) string {
	title := TitleStyle.Render(runewidth.Truncate(panelTitle, width-4, "…"))
	if w.data.Pending > 0 {
		title = w.spinner.View() + " " + title
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, title)
}

func (w Widget) renderFooter(width int) string {
	if w.status != "" {
		style := StatusStyle
		if w.statusErr {
			style = ErrorStyle
		}
		return style.Render(runewidth.Truncate(w.status, width, "…"))
	}

	var parts []string
	parts = append(parts, hint(w.keys.Send)...)
	parts = append(parts, hint(w.keys.Close)...)
	parts = append(parts, hint(w.keys.YankReply)...)
	footer := FormatFooter(parts...)
	if lipgloss.Width(footer) > width {
		footer = FormatFooter(append(hint(w.keys.Send), hint(w.keys.Close)...)...)
	}
	return footer
}

// renderTranscript lays out one labeled bubble per message, user bubbles on
// the right and bot bubbles on the left.
func renderTranscript(msgs []appmodel.Message, width int) string {
	if len(msgs) == 0 {
		return DimStyle.Render("Ask us anything about StreamSavvy.")
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, renderBubble(msg, width))
	}
	return strings.Join(blocks, "\n")
}

func renderBubble(msg appmodel.Message, width int) string {
	bubbleWidth := width * 4 / 5
	if bubbleWidth < 10 {
		bubbleWidth = width
	}

	text := render.TerminalText(msg.Text)
	stamp := DimStyle.Render(msg.Timestamp.Format("15:04"))

	if msg.Role == appmodel.RoleUser {
		label := UserStyle.Render(msg.Role.Label()) + " " + stamp
		bubble := fitBubble(userBubbleStyle, text, bubbleWidth)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	label := BotStyle.Render(msg.Role.Label()) + " " + stamp
	bubble := fitBubble(botBubbleStyle, text, bubbleWidth)
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// fitBubble shrinks short messages to their own width and wraps long ones at
// the bubble limit.
func fitBubble(style lipgloss.Style, text string, maxWidth int) string {
	contentMax := maxWidth - style.GetHorizontalFrameSize()
	if contentMax < 1 {
		contentMax = 1
	}
	if w := lipgloss.Width(text); w < contentMax {
		contentMax = w
	}
	if contentMax < 1 {
		contentMax = 1
	}
	return style.Width(contentMax + style.GetHorizontalPadding()).Render(text)
}
