package modem

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/modem-tools/modemsms/internal/xmlcodec"
)

// Message is one inbox entry as decoded from the device.
type Message struct {
	node *xmlcodec.Node
}

// NewMessage wraps a decoded message node.
func NewMessage(n *xmlcodec.Node) Message {
	return Message{node: n}
}

// Field returns the named scalar field, or "" when absent or non-scalar.
func (m Message) Field(name string) string {
	v, ok := m.node.Get(name)
	if !ok {
		return ""
	}
	s, ok := v.(xmlcodec.Scalar)
	if !ok {
		return ""
	}
	return string(s)
}

func (m Message) Index() string   { return m.Field("Index") }
func (m Message) Phone() string   { return m.Field("Phone") }
func (m Message) Content() string { return m.Field("Content") }
func (m Message) Date() string    { return m.Field("Date") }

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.node)
}

// SendMessage sends content to a single phone number via the sms command.
//
// Length runs one past the content's rune count: the device's own length
// accounting is off by one, and the firmware mis-renders messages when the
// client sends the true length.
func (c *Client) SendMessage(ctx context.Context, content, number string) (*Result, error) {
	length := utf8.RuneCountInString(content) + 1
	date := time.Now().Format("2006-01-02T15:04:05")

	phones := xmlcodec.NewNode()
	phones.Set("Phone", xmlcodec.Scalar(number))

	overrides := xmlcodec.NewNode()
	overrides.Set("Content", xmlcodec.Scalar(content))
	overrides.Set("Length", xmlcodec.Scalar(strconv.Itoa(length)))
	overrides.Set("Date", xmlcodec.Scalar(date))
	overrides.Set("Phones", phones)

	return c.RunCommand(ctx, "sms", overrides)
}

// ListInbox returns the messages stored on the modem or SIM. An absent or
// empty Messages field yields an empty slice. A single message decodes as a
// bare node rather than a one-element list, so it is coerced here.
func (c *Client) ListInbox(ctx context.Context) ([]Message, error) {
	res, err := c.RunCommand(ctx, "sms-list", nil)
	if err != nil {
		return nil, err
	}

	body, ok := res.Body.(*xmlcodec.Node)
	if !ok {
		return nil, nil
	}
	container, ok := body.Get("Messages")
	if !ok {
		return nil, nil
	}
	messages, ok := container.(*xmlcodec.Node)
	if !ok {
		// An empty <Messages></Messages> decodes to a scalar.
		return nil, nil
	}
	entry, ok := messages.Get("Message")
	if !ok {
		return nil, nil
	}

	var out []Message
	switch v := entry.(type) {
	case xmlcodec.List:
		for _, item := range v {
			if n, ok := item.(*xmlcodec.Node); ok {
				out = append(out, Message{node: n})
			}
		}
	case *xmlcodec.Node:
		out = append(out, Message{node: v})
	}
	return out, nil
}

// DeleteResult is the outcome of one sms-delete issued by ClearInbox.
type DeleteResult struct {
	Index  string
	Result *Result
	Err    error
}

// ClearInbox deletes every inbox message one at a time, in inbox order, and
// returns the per-message outcomes. It does not stop on individual failures;
// callers inspect each DeleteResult. Deletions stay strictly sequential:
// each one can shift device-side indices, and the device is not trusted with
// concurrent mutations.
func (c *Client) ClearInbox(ctx context.Context) ([]DeleteResult, error) {
	inbox, err := c.ListInbox(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]DeleteResult, 0, len(inbox))
	for _, msg := range inbox {
		overrides := xmlcodec.NewNode()
		overrides.Set("Index", xmlcodec.Scalar(msg.Index()))
		res, err := c.RunCommand(ctx, "sms-delete", overrides)
		results = append(results, DeleteResult{Index: msg.Index(), Result: res, Err: err})
	}
	return results, nil
}
