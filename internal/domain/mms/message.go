package mms

import "errors"

// Webhook field names sent by the messaging provider.
const (
	FieldFrom       = "From"
	FieldTo         = "To"
	FieldMediaURL   = "MediaUrl0"
	FieldMessageSID = "MessageSid"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrNoImage                = errors.New("no image url found in incoming message")
)

type InboundMessage struct {
	MessageSID      string
	OriginNumber    string
	RecipientNumber string
	ImageURL        string
}

// NewInboundMessage picks the message fields out of a parsed webhook body.
// Values that are not strings are treated as absent.
func NewInboundMessage(body map[string]any) *InboundMessage {
	return &InboundMessage{
		MessageSID:      stringField(body, FieldMessageSID),
		OriginNumber:    stringField(body, FieldFrom),
		RecipientNumber: stringField(body, FieldTo),
		ImageURL:        stringField(body, FieldMediaURL),
	}
}

func (m *InboundMessage) HasImage() bool {
	return m.ImageURL != ""
}

func stringField(body map[string]any, key string) string {
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}

// OutboundReply is a text message pushed back to the sender of an inbound message.
type OutboundReply struct {
	To   string
	From string
	Body string
}

// ReplyTo addresses a reply from the number the message was sent to back to its origin.
func (m *InboundMessage) ReplyTo(body string) OutboundReply {
	return OutboundReply{
		To:   m.OriginNumber,
		From: m.RecipientNumber,
		Body: body,
	}
}

type Delivery struct {
	SID    string
	Status string
}
