package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotdogbot/internal/domain/mms"
	"hotdogbot/internal/infrastructure/config"
	"hotdogbot/internal/infrastructure/metrics"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.Config{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "secret",
		TwilioBaseURL:    srv.URL + "/",
	}, srv.Client(), metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)
	return c
}

func TestSend_PostsForm(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		// base64("AC123:secret")
		assert.Equal(t, "Basic QUMxMjM6c2VjcmV0", r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "+15550001111", r.PostForm.Get("To"))
		assert.Equal(t, "+15550002222", r.PostForm.Get("From"))
		assert.Equal(t, mms.ReplyHotdog, r.PostForm.Get("Body"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM42","status":"queued"}`))
	})

	delivery, err := c.Send(context.Background(), mms.OutboundReply{
		To:   "+15550001111",
		From: "+15550002222",
		Body: mms.ReplyHotdog,
	})

	require.NoError(t, err)
	assert.Equal(t, &mms.Delivery{SID: "SM42", Status: "queued"}, delivery)
}

func TestSend_Non2xxIsErrorWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":20503,"message":"Service unavailable","status":503}`))
	})

	_, err := c.Send(context.Background(), mms.OutboundReply{To: "+1", From: "+2", Body: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503 code 20503: Service unavailable")
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(&config.Config{TwilioAccountSID: "AC1"}, nil, nil)
	require.Error(t, err)
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "status 400"},
		{"api error", `{"code":21211,"message":"Invalid 'To' Phone Number"}`, "status 400 code 21211: Invalid 'To' Phone Number"},
		{"message only", `{"message":"bad"}`, "status 400: bad"},
		{"raw", "nope", "status 400: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatError(http.StatusBadRequest, []byte(tt.body)))
		})
	}
}
