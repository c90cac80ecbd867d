package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message is the payload Slack incoming webhooks accept.
type Message struct {
	Text string `json:"text"`
}

// WebhookClient posts messages to a fixed Slack incoming webhook.
type WebhookClient interface {
	Send(ctx context.Context, msg Message) error
}

type webhookClientImpl struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookClient creates a Slack webhook client.
func NewWebhookClient(webhookURL string) WebhookClient {
	return &webhookClientImpl{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the message to the webhook. Slack answers non-2xx on failure;
// no retries happen here, the caller decides.
func (c *webhookClientImpl) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
