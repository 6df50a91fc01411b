package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"hotdogbot/internal/domain/mms"
)

// VerdictEvent is the JSON payload published for every classification.
type VerdictEvent struct {
	ID         string    `json:"id"`
	MessageSID string    `json:"messageSid,omitempty"`
	ImageURL   string    `json:"imageUrl"`
	Answer     string    `json:"answer"`
	Hotdog     bool      `json:"hotdog"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Publisher sends verdict events to a Pub/Sub topic.
type Publisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPublisher creates a publisher for topicID in projectID. Extra client
// options (credentials file, emulator connection) are passed through.
func NewPublisher(ctx context.Context, projectID, topicID string, opts ...option.ClientOption) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &Publisher{
		client: client,
		topic:  client.Topic(topicID),
	}, nil
}

// Record publishes v and waits for the server to acknowledge it.
func (p *Publisher) Record(ctx context.Context, v *mms.Verdict) error {
	data, err := json.Marshal(newVerdictEvent(v))
	if err != nil {
		return fmt.Errorf("marshal verdict event: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"hotdog": strconv.FormatBool(v.Hotdog),
			"model":  v.Model,
		},
	})

	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish verdict: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the Pub/Sub client
func (p *Publisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

func newVerdictEvent(v *mms.Verdict) VerdictEvent {
	return VerdictEvent{
		ID:         v.ID,
		MessageSID: v.MessageSID,
		ImageURL:   v.ImageURL,
		Answer:     v.Answer.String(),
		Hotdog:     v.Hotdog,
		Model:      v.Model,
		CreatedAt:  v.CreatedAt,
	}
}
