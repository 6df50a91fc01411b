package webhook

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
	"hotdogbot/internal/infrastructure/metrics"
)

type pushReplier interface {
	Execute(ctx context.Context, msg *mms.InboundMessage) error
}

// PushHandler answers inbound messages by sending a new message through the
// provider API and acknowledges the webhook with a plain "OK".
type PushHandler struct {
	replier pushReplier
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPushHandler(replier pushReplier, m *metrics.Metrics, logger *zap.Logger) *PushHandler {
	return &PushHandler{replier: replier, metrics: m, logger: logger}
}

func (h *PushHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := ReadRequestBody(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := mms.NewInboundMessage(body)
	if err := h.replier.Execute(r.Context(), msg); err != nil {
		h.fail(w, err)
		return
	}

	h.metrics.ObserveWebhook("push", outcomeOK)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *PushHandler) fail(w http.ResponseWriter, err error) {
	outcome := outcomeFor(err)
	h.metrics.ObserveWebhook("push", outcome)
	h.logger.Error("push webhook failed", zap.String("outcome", outcome), zap.Error(err))
	writeError(w, err)
}
