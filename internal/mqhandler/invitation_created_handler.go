package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/notify"
)

// InvitationCreatedHandler emails the registration link to an invited
// address. Delivery failure returns an error so the message is redelivered.
type InvitationCreatedHandler struct {
	email  notify.Sender
	logger *zap.Logger
}

func NewInvitationCreatedHandler(email notify.Sender, logger *zap.Logger) *InvitationCreatedHandler {
	return &InvitationCreatedHandler{email: email, logger: logger}
}

func (h *InvitationCreatedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.InvitationCreatedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal InvitationCreatedPayload", zap.Error(err))
		return err
	}

	h.logger.Info("Handling invitation.created event",
		zap.Int64("invitation_id", p.InvitationID),
		zap.Int64("project_id", p.ProjectID),
	)

	subject := fmt.Sprintf("You have been invited to %s", p.ProjectName)
	message := fmt.Sprintf(
		"%s invited you to join the renovation project %q as %s.\nRegister here: %s",
		p.InvitedBy, p.ProjectName, p.Role, p.RegisterURL,
	)

	result, err := h.email.Send(ctx, []string{p.Email}, subject, message)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("invitation email to %s failed", p.Email)
	}
	return nil
}
