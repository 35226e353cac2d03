// Package chatbot posts user messages to the StreamPlus /chatbot/ endpoint
// and turns whatever comes back into a displayable reply.
//
// Send never fails from the caller's point of view: HTTP errors, malformed
// bodies and transport failures all map to a Result carrying a fixed
// fallback text, with the underlying error attached for logging.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// Path is the fixed endpoint path, resolved against the configured base URL.
const Path = "/chatbot/"

const csrfHeader = "X-CSRFToken"

type Client struct {
	httpClient *http.Client
	url        string
	csrfToken  string
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client (which owns a cookie jar).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient builds a client for the site at baseURL. The token is sent
// verbatim as X-CSRFToken, including when it is empty.
func NewClient(baseURL, csrfToken string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint %q", baseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("invalid endpoint %q: scheme must be http or https", baseURL)
	}
	if base.Host == "" {
		return nil, errors.Errorf("invalid endpoint %q: missing host", baseURL)
	}

	c := &Client{
		url:       base.ResolveReference(&url.URL{Path: Path}).String(),
		csrfToken: csrfToken,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		// The backend keeps order state in its session; keep its cookie
		// for the life of the client like a browser tab would.
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, errors.Wrap(err, "create cookie jar")
		}
		c.httpClient = &http.Client{Jar: jar}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

// URL returns the absolute endpoint messages are posted to.
func (c *Client) URL() string {
	return c.url
}

// Send posts one message and waits for the single reply.
func (c *Client) Send(ctx context.Context, text string) Result {
	body, err := json.Marshal(Request{Message: text})
	if err != nil {
		return networkFailure(errors.Wrap(err, "encode request"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return networkFailure(errors.Wrap(err, "build request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(csrfHeader, c.csrfToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkFailure(errors.Wrap(err, "post message"))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return Result{
				Reply:      MsgGenericFailure,
				Outcome:    OutcomeHTTPError,
				StatusCode: resp.StatusCode,
				Err:        errors.Wrapf(err, "read %d response body", resp.StatusCode),
			}
		}
		return Result{
			Reply:      string(data),
			Outcome:    OutcomeHTTPError,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("chatbot returned status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{
			Reply:      MsgParseFailure,
			Outcome:    OutcomeDecodeError,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrap(err, "read response body"),
		}
	}

	decoded, err := DecodeResponse(data)
	if errors.Is(err, ErrUnusableReply) {
		return Result{
			Reply:      MsgGenericFailure,
			Outcome:    OutcomeUnusableReply,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	if err != nil {
		return Result{
			Reply:      MsgParseFailure,
			Outcome:    OutcomeDecodeError,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	reply, outcome := decoded.Text()
	return Result{
		Reply:      reply,
		Outcome:    outcome,
		StatusCode: resp.StatusCode,
	}
}

func networkFailure(err error) Result {
	return Result{
		Reply:   MsgGenericFailure,
		Outcome: OutcomeNetworkError,
		Err:     err,
	}
}
