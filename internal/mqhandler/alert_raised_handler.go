package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/notify"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/util"
)

// AlertRaisedHandler turns periodic scan results into email digests. The scan
// runs on every instance, so a Redis dedup key keeps one digest per project
// per day.
type AlertRaisedHandler struct {
	email   notify.Sender
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewAlertRaisedHandler(email notify.Sender, deduper *util.Deduper, logger *zap.Logger) *AlertRaisedHandler {
	return &AlertRaisedHandler{email: email, deduper: deduper, logger: logger}
}

func (h *AlertRaisedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p mqcontracts.AlertRaisedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal AlertRaisedPayload", zap.Error(err))
		return err
	}

	dedupKey := fmt.Sprintf("%d:%s", p.ProjectID, p.RaisedAt.Format("2006-01-02"))
	if !h.deduper.AcquireOnce(ctx, "alert_raised", dedupKey) {
		return nil
	}

	if len(p.Recipients) == 0 {
		h.logger.Info("Alert has no recipients, skipping",
			zap.Int64("project_id", p.ProjectID),
		)
		return nil
	}

	subject := fmt.Sprintf("Project update: %s", p.ProjectName)
	message := fmt.Sprintf(
		"Attention needed in %q:\n- %d overdue tasks\n- %d payments due in the next two weeks\n- %d tasks waiting on something",
		p.ProjectName, p.OverdueTasks, p.UpcomingPayments, p.WaitingTasks,
	)

	result, err := h.email.Send(ctx, p.Recipients, subject, message)
	if err != nil {
		return err
	}

	h.logger.Info("Alert digest sent",
		zap.Int64("project_id", p.ProjectID),
		zap.Int("delivered", result.Delivered),
		zap.Int("failed", result.Failed),
	)
	return nil
}
