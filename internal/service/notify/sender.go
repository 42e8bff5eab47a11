package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/pkg/metrics"
)

const (
	ChannelEmail    = "EMAIL"
	ChannelWhatsApp = "WHATSAPP"
)

// Result reports delivery counts; callers only need the split, not provider
// internals.
type Result struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

type Sender interface {
	Send(ctx context.Context, recipients []string, subject, message string) (Result, error)
}

// WebhookSender posts messages to a provider webhook one recipient at a time.
// A failing recipient counts as failed without aborting the rest.
type WebhookSender struct {
	channel    string
	webhookURL string
	fromName   string
	client     *http.Client
	logger     *zap.Logger
}

func NewWebhookSender(channel, webhookURL, fromName string, logger *zap.Logger) *WebhookSender {
	return &WebhookSender{
		channel:    channel,
		webhookURL: webhookURL,
		fromName:   fromName,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type webhookMessage struct {
	From      string `json:"from"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
}

func (s *WebhookSender) Send(ctx context.Context, recipients []string, subject, message string) (Result, error) {
	var result Result
	for _, recipient := range recipients {
		if err := s.post(ctx, recipient, subject, message); err != nil {
			result.Failed++
			metrics.IncrementNotificationSent(s.channel, "failed")
			s.logger.Error("Notification delivery failed",
				zap.String("channel", s.channel),
				zap.String("recipient", recipient),
				zap.Error(err),
			)
			continue
		}
		result.Delivered++
		metrics.IncrementNotificationSent(s.channel, "delivered")
	}
	return result, nil
}

func (s *WebhookSender) post(ctx context.Context, recipient, subject, message string) error {
	body, err := json.Marshal(webhookMessage{
		From:      s.fromName,
		Recipient: recipient,
		Subject:   subject,
		Message:   message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

// LogSender records the intended message instead of delivering it. Used when
// a channel has no webhook configured, so user actions that trigger
// notifications still succeed.
type LogSender struct {
	channel string
	logger  *zap.Logger
}

func NewLogSender(channel string, logger *zap.Logger) *LogSender {
	return &LogSender{channel: channel, logger: logger}
}

func (s *LogSender) Send(_ context.Context, recipients []string, subject, message string) (Result, error) {
	s.logger.Info("Notification channel unconfigured, recording message only",
		zap.String("channel", s.channel),
		zap.Strings("recipients", recipients),
		zap.String("subject", subject),
		zap.String("message", message),
	)
	metrics.IncrementNotificationSent(s.channel, "logged")
	return Result{}, nil
}

// SenderFor picks the webhook sender when a URL is configured for the
// channel, otherwise the log-only fallback.
func SenderFor(channel, webhookURL, fromName string, logger *zap.Logger) Sender {
	if webhookURL == "" {
		return NewLogSender(channel, logger)
	}
	return NewWebhookSender(channel, webhookURL, fromName, logger)
}
