package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func TestWebhookSender_CountsDeliveredAndFailed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewWebhookSender(ChannelEmail, srv.URL, "Reno", zap.NewNop())
	result, err := s.Send(context.Background(), []string{"a@example.com", "b@example.com", "c@example.com"}, "hi", "body")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if result.Delivered != 2 || result.Failed != 1 {
		t.Errorf("result = %+v, want 2 delivered and 1 failed", result)
	}
}

func TestLogSender_NeverFails(t *testing.T) {
	s := NewLogSender(ChannelWhatsApp, zap.NewNop())
	result, err := s.Send(context.Background(), []string{"a@example.com"}, "", "body")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if result.Delivered != 0 || result.Failed != 0 {
		t.Errorf("result = %+v, want zero counts for log-only delivery", result)
	}
}

func TestSenderFor_PicksByConfiguration(t *testing.T) {
	if _, ok := SenderFor(ChannelEmail, "", "Reno", zap.NewNop()).(*LogSender); !ok {
		t.Error("empty URL should degrade to the log sender")
	}
	if _, ok := SenderFor(ChannelEmail, "https://hooks.example.com", "Reno", zap.NewNop()).(*WebhookSender); !ok {
		t.Error("configured URL should use the webhook sender")
	}
}
