package reply

import (
	"context"

	"hotdogbot/internal/domain/mms"
)

type ImageClassifier interface {
	Classify(ctx context.Context, imageURL string) (mms.Answer, error)
	Model() string
}

type MessageSender interface {
	Send(ctx context.Context, reply mms.OutboundReply) (*mms.Delivery, error)
}

type VerdictRecorder interface {
	Record(ctx context.Context, v *mms.Verdict) error
}
