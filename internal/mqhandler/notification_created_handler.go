package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	mqcontracts "github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/notify"
)

// NotificationCreatedHandler delivers queued notifications on the requested
// channel.
type NotificationCreatedHandler struct {
	email    notify.Sender
	whatsapp notify.Sender
	logger   *zap.Logger
}

func NewNotificationCreatedHandler(email, whatsapp notify.Sender, logger *zap.Logger) *NotificationCreatedHandler {
	return &NotificationCreatedHandler{
		email:    email,
		whatsapp: whatsapp,
		logger:   logger,
	}
}

func (h *NotificationCreatedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.NotificationCreatedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal NotificationCreatedPayload", zap.Error(err))
		return err
	}

	h.logger.Info("Handling notification.created event",
		zap.String("channel", p.Channel),
		zap.Int("recipients", len(p.Recipients)),
	)

	sender := h.email
	if p.Channel == notify.ChannelWhatsApp {
		sender = h.whatsapp
	}

	result, err := sender.Send(ctx, p.Recipients, p.Subject, p.Message)
	if err != nil {
		h.logger.Error("Failed to send notification", zap.Error(err))
		return err
	}

	h.logger.Info("Notification processed",
		zap.String("channel", p.Channel),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed),
	)
	return nil
}
