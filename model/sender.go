package model

import (
	"context"

	"streambot/chatbot"
)

// Sender delivers one user message and returns the reply to display.
// *chatbot.Client implements it; tests substitute their own.
type Sender interface {
	Send(ctx context.Context, text string) chatbot.Result
}

// SenderFunc adapts a plain function to Sender.
type SenderFunc func(ctx context.Context, text string) chatbot.Result

func (f SenderFunc) Send(ctx context.Context, text string) chatbot.Result {
	return f(ctx, text)
}
