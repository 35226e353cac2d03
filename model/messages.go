package model

import "streambot/chatbot"

// ReplyMsg carries the outcome of one send back into the event loop.
// RequestID is the ID of the user message that triggered it.
type ReplyMsg struct {
	RequestID string
	Result    chatbot.Result
}

type YankedMsg struct {
	What string
	Err  error
}
