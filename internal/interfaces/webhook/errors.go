package webhook

import (
	"errors"
	"net/http"

	"hotdogbot/internal/domain/mms"
)

// Outcome labels used for metrics and logs.
const (
	outcomeOK                     = "ok"
	outcomeNoImage                = "no_image"
	outcomeUnsupportedContentType = "unsupported_content_type"
	outcomeError                  = "error"
)

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, mms.ErrUnsupportedContentType):
		return outcomeUnsupportedContentType
	case errors.Is(err, mms.ErrNoImage):
		return outcomeNoImage
	default:
		return outcomeError
	}
}

func statusFor(err error) int {
	if errors.Is(err, mms.ErrUnsupportedContentType) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// writeError answers with the status for err. Only the content type error is
// echoed back; everything else stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := "internal error"
	if status == http.StatusUnsupportedMediaType {
		msg = err.Error()
	}
	http.Error(w, msg, status)
}
