package mms

import (
	"time"

	"github.com/google/uuid"
)

type Answer string

const (
	AnswerYes Answer = "Yes"
	AnswerNo  Answer = "No"
)

const (
	ReplyHotdog    = "✅ Hotdog"
	ReplyNotHotdog = "❌ Not Hotdog"
	ReplySendImage = "Send a picture and I'll tell you whether it's a hotdog or not!"
)

// IsHotdog reports whether the model said yes. Only the exact answer "Yes"
// counts; anything else the model returns is a no.
func (a Answer) IsHotdog() bool {
	return a == AnswerYes
}

// OnContract reports whether the model stayed within the two allowed words.
func (a Answer) OnContract() bool {
	return a == AnswerYes || a == AnswerNo
}

func (a Answer) String() string {
	return string(a)
}

// ReplyText maps a classifier answer onto the text sent back to the user.
func ReplyText(a Answer) string {
	if a.IsHotdog() {
		return ReplyHotdog
	}
	return ReplyNotHotdog
}

type Verdict struct {
	ID         string
	MessageSID string
	ImageURL   string
	Answer     Answer
	Hotdog     bool
	Model      string
	CreatedAt  time.Time
}

func NewVerdict(msg *InboundMessage, answer Answer, model string) *Verdict {
	return &Verdict{
		ID:         uuid.NewString(),
		MessageSID: msg.MessageSID,
		ImageURL:   msg.ImageURL,
		Answer:     answer,
		Hotdog:     answer.IsHotdog(),
		Model:      model,
		CreatedAt:  time.Now().UTC(),
	}
}

func (v *Verdict) ReplyText() string {
	return ReplyText(v.Answer)
}
