package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
	"hotdogbot/internal/infrastructure/config"
	"hotdogbot/internal/infrastructure/metrics"
)

const (
	systemPrompt = `You are an image classifer that only knows two words: "Yes" or "No". Answer the user question with only a one word answer. Do not respond with anything else.`
	userQuestion = "Is this image a hotdog?"
)

var tracer = otel.Tracer("hotdogbot.infrastructure.llm")

type Client struct {
	api     openai.Client
	model   string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewClient(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &Client{
		api:     openai.NewClient(opts...),
		model:   cfg.ModelName,
		metrics: m,
		logger:  logger,
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Classify asks the vision model whether the image at imageURL is a hotdog and
// returns its answer verbatim. It makes exactly one request.
func (c *Client) Classify(ctx context.Context, imageURL string) (mms.Answer, error) {
	ctx, span := tracer.Start(ctx, "llm.classify")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", c.model))

	start := time.Now()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: classificationMessages(imageURL),
	})
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveClassification("error", time.Since(start).Seconds())
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.metrics.ObserveClassification("error", time.Since(start).Seconds())
		return "", fmt.Errorf("empty LLM response")
	}

	answer := mms.Answer(resp.Choices[0].Message.Content)

	verdict := "not_hotdog"
	if answer.IsHotdog() {
		verdict = "hotdog"
	}
	c.metrics.ObserveClassification(verdict, time.Since(start).Seconds())
	span.SetAttributes(attribute.String("llm.answer", answer.String()))

	c.logger.Info("classifier result",
		zap.String("model", c.model),
		zap.String("answer", answer.String()),
	)

	return answer, nil
}

func classificationMessages(imageURL string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(userQuestion),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: imageURL,
			}),
		}),
	}
}
