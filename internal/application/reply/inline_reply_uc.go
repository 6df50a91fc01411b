package reply

import (
	"context"

	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
)

// InlineReplyUseCase produces the reply text for the webhook response body.
// It never calls the messaging provider.
type InlineReplyUseCase struct {
	verdicts verdictService
}

func NewInlineReplyUseCase(classifier ImageClassifier, logger *zap.Logger, recorders ...VerdictRecorder) *InlineReplyUseCase {
	return &InlineReplyUseCase{
		verdicts: verdictService{classifier: classifier, recorders: recorders, logger: logger},
	}
}

func (uc *InlineReplyUseCase) Execute(ctx context.Context, msg *mms.InboundMessage) (string, error) {
	if !msg.HasImage() {
		return mms.ReplySendImage, nil
	}

	verdict, err := uc.verdicts.classify(ctx, msg)
	if err != nil {
		return "", err
	}

	return verdict.ReplyText(), nil
}
