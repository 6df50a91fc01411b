package webhook

import (
	"context"
	"encoding/xml"
	"net/http"

	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
	"hotdogbot/internal/infrastructure/metrics"
)

type inlineReplier interface {
	Execute(ctx context.Context, msg *mms.InboundMessage) (string, error)
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// TwiMLHandler answers inbound messages in the webhook response body. The
// provider delivers the <Message> to the sender; nothing is sent from here.
type TwiMLHandler struct {
	replier inlineReplier
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewTwiMLHandler(replier inlineReplier, m *metrics.Metrics, logger *zap.Logger) *TwiMLHandler {
	return &TwiMLHandler{replier: replier, metrics: m, logger: logger}
}

func (h *TwiMLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := ReadRequestBody(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := mms.NewInboundMessage(body)
	text, err := h.replier.Execute(r.Context(), msg)
	if err != nil {
		h.fail(w, err)
		return
	}

	out, err := xml.Marshal(twimlResponse{Message: text})
	if err != nil {
		h.fail(w, err)
		return
	}

	outcome := outcomeOK
	if !msg.HasImage() {
		outcome = outcomeNoImage
	}
	h.metrics.ObserveWebhook("twiml", outcome)

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

func (h *TwiMLHandler) fail(w http.ResponseWriter, err error) {
	outcome := outcomeFor(err)
	h.metrics.ObserveWebhook("twiml", outcome)
	h.logger.Error("twiml webhook failed", zap.String("outcome", outcome), zap.Error(err))
	writeError(w, err)
}
