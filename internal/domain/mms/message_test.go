package mms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInboundMessage(t *testing.T) {
	msg := NewInboundMessage(map[string]any{
		"From":       "+15550001111",
		"To":         "+15550002222",
		"MediaUrl0":  "https://example.com/dog.jpg",
		"MessageSid": "MM123",
	})

	assert.Equal(t, "+15550001111", msg.OriginNumber)
	assert.Equal(t, "+15550002222", msg.RecipientNumber)
	assert.Equal(t, "https://example.com/dog.jpg", msg.ImageURL)
	assert.Equal(t, "MM123", msg.MessageSID)
	assert.True(t, msg.HasImage())
}

func TestNewInboundMessage_NonStringValuesIgnored(t *testing.T) {
	msg := NewInboundMessage(map[string]any{
		"From":      12345.0,
		"MediaUrl0": []any{"https://example.com/dog.jpg"},
	})

	assert.Empty(t, msg.OriginNumber)
	assert.False(t, msg.HasImage())
}

func TestReplyText(t *testing.T) {
	tests := []struct {
		answer Answer
		want   string
	}{
		{"Yes", ReplyHotdog},
		{"No", ReplyNotHotdog},
		{"yes", ReplyNotHotdog},
		{"Yes.", ReplyNotHotdog},
		{" Yes", ReplyNotHotdog},
		{"", ReplyNotHotdog},
		{"I think this is a hotdog", ReplyNotHotdog},
	}

	for _, tt := range tests {
		t.Run(string(tt.answer), func(t *testing.T) {
			assert.Equal(t, tt.want, ReplyText(tt.answer))
		})
	}
}

func TestAnswerOnContract(t *testing.T) {
	assert.True(t, AnswerYes.OnContract())
	assert.True(t, AnswerNo.OnContract())
	assert.False(t, Answer("Maybe").OnContract())
}

func TestNewVerdict(t *testing.T) {
	msg := &InboundMessage{MessageSID: "MM1", ImageURL: "https://example.com/a.jpg"}

	v := NewVerdict(msg, AnswerYes, "gpt-4-vision-preview")

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "MM1", v.MessageSID)
	assert.True(t, v.Hotdog)
	assert.Equal(t, ReplyHotdog, v.ReplyText())
	assert.False(t, v.CreatedAt.IsZero())
}

func TestReplyTo(t *testing.T) {
	msg := &InboundMessage{OriginNumber: "+1111", RecipientNumber: "+2222"}

	reply := msg.ReplyTo("hi")

	assert.Equal(t, OutboundReply{To: "+1111", From: "+2222", Body: "hi"}, reply)
}
