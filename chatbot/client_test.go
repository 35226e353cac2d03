package chatbot_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streambot/chatbot"
	"streambot/chatbot/chatbottest"
)

func newClient(t *testing.T, srv *chatbottest.Server, token string, opts ...chatbot.Option) *chatbot.Client {
	t.Helper()
	c, err := chatbot.NewClient(srv.URL, token, opts...)
	require.NoError(t, err)
	return c
}

func TestSendPostsMessageWithHeaders(t *testing.T) {
	srv := chatbottest.NewServer(t, chatbottest.Reply("Hi there"))
	c := newClient(t, srv, "tok-123")

	res := c.Send(context.Background(), "Hello")

	assert.Equal(t, "Hi there", res.Reply)
	assert.Equal(t, chatbot.OutcomeReply, res.Outcome)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NoError(t, res.Err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Hello", reqs[0].Message)
	assert.Equal(t, "application/json", reqs[0].ContentType)
	assert.Equal(t, "tok-123", reqs[0].CSRFToken)
	assert.JSONEq(t, `{"message":"Hello"}`, string(reqs[0].Body))
}

func TestSendAlwaysSendsCSRFHeader(t *testing.T) {
	srv := chatbottest.NewServer(t, chatbottest.Reply("ok"))
	c := newClient(t, srv, "")

	c.Send(context.Background(), "Hi")

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].HasCSRFToken)
	assert.Empty(t, reqs[0].CSRFToken)
}

func TestSendOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		reply   string
		outcome chatbot.Outcome
		status  int
	}{
		{
			name:    "server error body is shown",
			handler: chatbottest.Status(http.StatusInternalServerError, "Server error"),
			reply:   "Server error",
			outcome: chatbot.OutcomeHTTPError,
			status:  http.StatusInternalServerError,
		},
		{
			name:    "client error body is shown",
			handler: chatbottest.Status(http.StatusMethodNotAllowed, `{"error": "Only POST allowed"}`),
			reply:   `{"error": "Only POST allowed"}`,
			outcome: chatbot.OutcomeHTTPError,
			status:  http.StatusMethodNotAllowed,
		},
		{
			name:    "invalid json",
			handler: chatbottest.Raw("application/json", "not json"),
			reply:   chatbot.MsgParseFailure,
			outcome: chatbot.OutcomeDecodeError,
			status:  http.StatusOK,
		},
		{
			name:    "missing reply field",
			handler: chatbottest.Raw("application/json", "{}"),
			reply:   chatbot.MsgNoReply,
			outcome: chatbot.OutcomeNoReply,
			status:  http.StatusOK,
		},
		{
			name:    "empty reply",
			handler: chatbottest.Raw("application/json", `{"reply": ""}`),
			reply:   chatbot.MsgNoReply,
			outcome: chatbot.OutcomeNoReply,
			status:  http.StatusOK,
		},
		{
			name:    "array body has no reply",
			handler: chatbottest.Raw("application/json", `["reply"]`),
			reply:   chatbot.MsgNoReply,
			outcome: chatbot.OutcomeNoReply,
			status:  http.StatusOK,
		},
		{
			name:    "number body has no reply",
			handler: chatbottest.Raw("application/json", "42"),
			reply:   chatbot.MsgNoReply,
			outcome: chatbot.OutcomeNoReply,
			status:  http.StatusOK,
		},
		{
			name:    "false reply",
			handler: chatbottest.Raw("application/json", `{"reply": false}`),
			reply:   chatbot.MsgNoReply,
			outcome: chatbot.OutcomeNoReply,
			status:  http.StatusOK,
		},
		{
			name:    "null body",
			handler: chatbottest.Raw("application/json", "null"),
			reply:   chatbot.MsgGenericFailure,
			outcome: chatbot.OutcomeUnusableReply,
			status:  http.StatusOK,
		},
		{
			name:    "numeric reply",
			handler: chatbottest.Raw("application/json", `{"reply": 42}`),
			reply:   chatbot.MsgGenericFailure,
			outcome: chatbot.OutcomeUnusableReply,
			status:  http.StatusOK,
		},
		{
			name:    "multi-line reply kept verbatim",
			handler: chatbottest.Reply("line one\nline two"),
			reply:   "line one\nline two",
			outcome: chatbot.OutcomeReply,
			status:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatbottest.NewServer(t, tt.handler)
			c := newClient(t, srv, "")

			res := c.Send(context.Background(), "Hi")

			assert.Equal(t, tt.reply, res.Reply)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.status, res.StatusCode)
			if tt.outcome == chatbot.OutcomeReply {
				assert.NoError(t, res.Err)
			}
		})
	}
}

func TestSendNetworkFailure(t *testing.T) {
	srv := chatbottest.NewServer(t, chatbottest.Reply("unreachable"))
	c := newClient(t, srv, "")
	srv.Close()

	res := c.Send(context.Background(), "Hi")

	assert.Equal(t, chatbot.MsgGenericFailure, res.Reply)
	assert.Equal(t, chatbot.OutcomeNetworkError, res.Outcome)
	assert.Error(t, res.Err)
}

func TestSendCancelledContext(t *testing.T) {
	srv := chatbottest.NewServer(t, chatbottest.Reply("late"))
	c := newClient(t, srv, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Send(ctx, "Hi")

	assert.Equal(t, chatbot.MsgGenericFailure, res.Reply)
	assert.Equal(t, chatbot.OutcomeNetworkError, res.Outcome)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestSendTimeout(t *testing.T) {
	srv := chatbottest.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	c := newClient(t, srv, "", chatbot.WithTimeout(50*time.Millisecond))

	res := c.Send(context.Background(), "Hi")

	assert.Equal(t, chatbot.OutcomeNetworkError, res.Outcome)
	assert.Equal(t, chatbot.MsgGenericFailure, res.Reply)
}

func TestSendKeepsSessionCookie(t *testing.T) {
	srv := chatbottest.NewServer(t, chatbottest.Session("abc"))
	c := newClient(t, srv, "")

	first := c.Send(context.Background(), "order netflix")
	second := c.Send(context.Background(), "Juan - juan@example.com")

	assert.Equal(t, "session:", first.Reply)
	assert.Equal(t, "session:abc", second.Reply)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].SessionID)
	assert.Equal(t, "abc", reqs[1].SessionID)
}

func TestNewClientResolvesFixedPath(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "http://localhost:8000/chatbot/"},
		{"http://localhost:8000/", "http://localhost:8000/chatbot/"},
		{"https://shop.example.com/products/", "https://shop.example.com/chatbot/"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			c, err := chatbot.NewClient(tt.base, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.URL())
		})
	}
}

func TestNewClientRejectsBadEndpoint(t *testing.T) {
	for _, base := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		t.Run(base, func(t *testing.T) {
			_, err := chatbot.NewClient(base, "")
			assert.Error(t, err)
		})
	}
}
