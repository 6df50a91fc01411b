package reply

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
)

// verdictService runs the single classification call both reply flows share
// and fans the verdict out to the recorders.
type verdictService struct {
	classifier ImageClassifier
	recorders  []VerdictRecorder
	logger     *zap.Logger
}

func (s *verdictService) classify(ctx context.Context, msg *mms.InboundMessage) (*mms.Verdict, error) {
	answer, err := s.classifier.Classify(ctx, msg.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	verdict := mms.NewVerdict(msg, answer, s.classifier.Model())

	if !answer.OnContract() {
		s.logger.Warn("classifier answered outside Yes/No",
			zap.String("message_sid", msg.MessageSID),
			zap.String("answer", answer.String()),
		)
	}

	for _, r := range s.recorders {
		if err := r.Record(ctx, verdict); err != nil {
			s.logger.Error("record verdict",
				zap.String("verdict_id", verdict.ID),
				zap.Error(err),
			)
		}
	}

	return verdict, nil
}
