package webhook

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"hotdogbot/internal/domain/mms"
)

const maxMultipartMemory = 32 << 20

// ReadRequestBody decodes the request body according to its Content-Type.
// JSON bodies come back as decoded; form bodies (urlencoded or multipart)
// become a flat map where the last value of a repeated key wins. Multipart
// file parts are not included.
func ReadRequestBody(r *http.Request) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "application/json"):
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return body, nil

	case strings.Contains(contentType, "form"):
		return readForm(r, contentType)

	default:
		return nil, fmt.Errorf("%w: %q", mms.ErrUnsupportedContentType, contentType)
	}
}

func readForm(r *http.Request, contentType string) (map[string]any, error) {
	var values url.Values

	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		values = r.MultipartForm.Value
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		values = r.PostForm
	}

	body := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		body[key] = vals[len(vals)-1]
	}
	return body, nil
}
