package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"hotdogbot/internal/domain/mms"
	"hotdogbot/internal/infrastructure/config"
	"hotdogbot/internal/infrastructure/metrics"
)

var tracer = otel.Tracer("hotdogbot.infrastructure.twilio")

// Client posts SMS/MMS replies through Twilio's Messages resource.
type Client struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(cfg *config.Config, httpClient *http.Client, m *metrics.Metrics) (*Client, error) {
	if !cfg.HasTwilio() {
		return nil, errors.New("twilio credentials missing")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		baseURL:    strings.TrimSuffix(cfg.TwilioBaseURL, "/"),
		httpClient: httpClient,
		metrics:    m,
	}, nil
}

func (c *Client) messagesURL() string {
	return fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
}

type messageResource struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type apiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// Send makes a single POST to the Messages resource. Any non-2xx answer is an error.
func (c *Client) Send(ctx context.Context, reply mms.OutboundReply) (*mms.Delivery, error) {
	ctx, span := tracer.Start(ctx, "twilio.send")
	defer span.End()
	span.SetAttributes(attribute.String("twilio.to", reply.To))

	form := url.Values{}
	form.Set("To", reply.To)
	form.Set("From", reply.From)
	form.Set("Body", reply.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.messagesURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveOutbound("error")
		return nil, fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("twilio returned %s", formatError(resp.StatusCode, body))
		span.RecordError(err)
		c.metrics.ObserveOutbound("error")
		return nil, err
	}

	var msg messageResource
	if err := json.Unmarshal(body, &msg); err != nil {
		c.metrics.ObserveOutbound("error")
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.ObserveOutbound("sent")
	return &mms.Delivery{SID: msg.SID, Status: msg.Status}, nil
}

func formatError(status int, body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return fmt.Sprintf("status %d", status)
	}
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		if parsed.Code != 0 {
			return fmt.Sprintf("status %d code %d: %s", status, parsed.Code, parsed.Message)
		}
		return fmt.Sprintf("status %d: %s", status, parsed.Message)
	}
	return fmt.Sprintf("status %d: %s", status, string(body))
}
