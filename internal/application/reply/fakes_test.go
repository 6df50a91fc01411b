package reply

import (
	"context"
	"errors"
	"sync"

	"hotdogbot/internal/domain/mms"
)

type fakeClassifier struct {
	answer mms.Answer
	err    error
	calls  []string
}

func (f *fakeClassifier) Classify(_ context.Context, imageURL string) (mms.Answer, error) {
	f.calls = append(f.calls, imageURL)
	return f.answer, f.err
}

func (f *fakeClassifier) Model() string { return "test-model" }

type fakeSender struct {
	err  error
	sent []mms.OutboundReply
}

func (f *fakeSender) Send(_ context.Context, r mms.OutboundReply) (*mms.Delivery, error) {
	f.sent = append(f.sent, r)
	if f.err != nil {
		return nil, f.err
	}
	return &mms.Delivery{SID: "SM1", Status: "queued"}, nil
}

type fakeRecorder struct {
	mu       sync.Mutex
	err      error
	verdicts []*mms.Verdict
}

func (f *fakeRecorder) Record(_ context.Context, v *mms.Verdict) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verdicts = append(f.verdicts, v)
	return f.err
}

var errBoom = errors.New("boom")

func imageMessage() *mms.InboundMessage {
	return &mms.InboundMessage{
		MessageSID:      "MM1",
		OriginNumber:    "+15550001111",
		RecipientNumber: "+15550002222",
		ImageURL:        "https://example.com/hotdog.jpg",
	}
}
