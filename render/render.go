// Package render turns transcript messages into display text: HTML bubble
// markup for embedding in a page, and sanitized text for the terminal.
//
// Message text is always treated as untrusted. HTML output escapes it before
// inserting line breaks; terminal output drops control characters so a reply
// cannot move the cursor, recolor the screen or set the window title.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"streambot/model"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTMLText escapes s and then turns each newline into <br>.
func HTMLText(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}

func bubbleClass(role model.Role) string {
	if role == model.RoleUser {
		return "msg-user"
	}
	return "msg-bot"
}

// HTMLMessage renders one message as badge + bubble markup.
func HTMLMessage(msg model.Message) string {
	return fmt.Sprintf(
		`<div class="mb-3"><div class="badge app-badge">%s</div><div class="mt-2 p-3 border rounded-3 %s">%s</div></div>`,
		msg.Role.Label(),
		bubbleClass(msg.Role),
		HTMLText(msg.Text),
	)
}

// HTMLTranscript renders messages in order, one per line.
func HTMLTranscript(msgs []model.Message) string {
	var b strings.Builder
	for _, msg := range msgs {
		b.WriteString(HTMLMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

// TerminalText removes control characters other than newline and tab.
// Carriage returns go too, so CRLF replies render as plain line breaks.
func TerminalText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// PlainTranscript renders messages for a pipe or log: label line, then
// the sanitized text.
func PlainTranscript(msgs []model.Message) string {
	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(msg.Role.Label())
		b.WriteString(":\n")
		b.WriteString(TerminalText(msg.Text))
		b.WriteString("\n")
	}
	return b.String()
}
