package notification

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoggerNotifierWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewLoggerNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := n.Send(context.Background(), Message{Kind: KindPremiumUpgrade, UserID: "u1", Body: "welcome", At: time.Now()})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"kind":"premium_upgrade"`, `"user_id":"u1"`, `"body":"welcome"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line %q missing %s", out, want)
		}
	}
}

func TestNilLoggerNotifierIsNoop(t *testing.T) {
	var n *LoggerNotifier
	if err := n.Send(context.Background(), Message{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_ = r.Send(context.Background(), Message{Kind: KindPremiumUpgrade, UserID: "a"})
	_ = r.Send(context.Background(), Message{Kind: KindPremiumUpgrade, UserID: "b"})

	got := r.Messages()
	if len(got) != 2 || got[1].UserID != "b" {
		t.Fatalf("unexpected messages: %+v", got)
	}
}
