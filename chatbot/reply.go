package chatbot

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Fixed texts shown in place of a reply when the exchange goes wrong.
const (
	MsgGenericFailure = "Sorry, something went wrong. Please try again."
	MsgParseFailure   = "Sorry, I could not parse the server response."
	MsgNoReply        = "Sorry, no response."
)

// Outcome classifies how an exchange ended.
type Outcome int

const (
	OutcomeReply Outcome = iota
	OutcomeHTTPError
	OutcomeDecodeError
	OutcomeUnusableReply
	OutcomeNoReply
	OutcomeNetworkError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReply:
		return "reply"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeDecodeError:
		return "decode_error"
	case OutcomeUnusableReply:
		return "unusable_reply"
	case OutcomeNoReply:
		return "no_reply"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Result is what a send produced. Reply is always displayable; Err only
// explains a non-reply outcome and is meant for the debug log.
type Result struct {
	Reply      string
	Outcome    Outcome
	StatusCode int
	Err        error
}

// Request is the body posted to the chatbot endpoint.
type Request struct {
	Message string `json:"message"`
}

// Response is a successful reply body. Reply is nil when the field is
// absent or null.
type Response struct {
	Reply *string `json:"reply,omitempty"`
}

// ErrUnusableReply is returned by DecodeResponse when the body parses but
// cannot be displayed: a null body, or a reply that is set to something
// other than text.
var ErrUnusableReply = errors.New("unusable reply")

// DecodeResponse reads a success body. Anything that is valid JSON decodes;
// only a body that is not an object with a non-empty "reply" string ends up
// without a reply. A falsy reply (null, false, 0) counts as no reply.
func DecodeResponse(body []byte) (Response, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Response{}, errors.Wrap(err, "decode response")
	}
	if v == nil {
		return Response{}, errors.Wrap(ErrUnusableReply, "response body is null")
	}

	fields, ok := v.(map[string]any)
	if !ok {
		return Response{}, nil
	}

	switch reply := fields["reply"].(type) {
	case nil:
		return Response{}, nil
	case string:
		return Response{Reply: &reply}, nil
	case bool:
		if !reply {
			return Response{}, nil
		}
	case float64:
		if reply == 0 {
			return Response{}, nil
		}
	}
	return Response{}, errors.Wrapf(ErrUnusableReply, "reply is a %T", fields["reply"])
}

// Text picks the text to show for a decoded response.
func (r Response) Text() (string, Outcome) {
	if r.Reply == nil || *r.Reply == "" {
		return MsgNoReply, OutcomeNoReply
	}
	return *r.Reply, OutcomeReply
}
