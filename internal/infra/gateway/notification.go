package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/usecase/shared"
)

// NotificationClient forwards queue envelopes to the notification
// collaborator's webhook. Template rendering and delivery happen there.
type NotificationClient struct {
	webhookURL string
	client     *http.Client
}

func NewNotificationClient(cfg config.GatewayConfig) *NotificationClient {
	return &NotificationClient{
		webhookURL: cfg.NotificationWebhookURL,
		client:     &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *NotificationClient) Deliver(ctx context.Context, envelope shared.Envelope) error {
	if envelope.RecipientEmail == "" {
		return errs.New("envelope has no recipient")
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return errs.Wrap(err, "failed to encode notification envelope")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build notification request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "notification service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.New(fmt.Sprintf("notification service returned %d", resp.StatusCode))
	}
	return nil
}
