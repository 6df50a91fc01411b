package reply

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
)

// PushReplyUseCase answers an inbound message by sending a new outbound
// message through the provider API.
type PushReplyUseCase struct {
	verdicts verdictService
	sender   MessageSender
	logger   *zap.Logger
}

func NewPushReplyUseCase(
	classifier ImageClassifier,
	sender MessageSender,
	logger *zap.Logger,
	recorders ...VerdictRecorder,
) *PushReplyUseCase {
	return &PushReplyUseCase{
		verdicts: verdictService{classifier: classifier, recorders: recorders, logger: logger},
		sender:   sender,
		logger:   logger,
	}
}

// Execute sends exactly one reply per call. When the message carries no
// image it sends the "send a picture" prompt and then still fails with
// mms.ErrNoImage.
func (uc *PushReplyUseCase) Execute(ctx context.Context, msg *mms.InboundMessage) error {
	if !msg.HasImage() {
		if err := uc.send(ctx, msg, mms.ReplySendImage); err != nil {
			return err
		}
		return mms.ErrNoImage
	}

	verdict, err := uc.verdicts.classify(ctx, msg)
	if err != nil {
		return err
	}

	return uc.send(ctx, msg, verdict.ReplyText())
}

func (uc *PushReplyUseCase) send(ctx context.Context, msg *mms.InboundMessage, body string) error {
	delivery, err := uc.sender.Send(ctx, msg.ReplyTo(body))
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	uc.logger.Info("reply sent",
		zap.String("message_sid", msg.MessageSID),
		zap.String("reply_sid", delivery.SID),
		zap.String("status", delivery.Status),
	)
	return nil
}
