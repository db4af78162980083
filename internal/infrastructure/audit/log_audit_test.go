package audit

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// captureLog redirects the process log for the duration of fn.
func captureLog(t *testing.T, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	fn()
	return buf.String()
}

func TestLogAuditLogger_LogEvent(t *testing.T) {
	logger := NewLogAuditLogger()

	event := domain.NewAuditEvent(domain.UserLoginFailureEvent, 7).
		WithEmail("maria@example.com").
		WithError(errors.New("bad credentials"))

	out := captureLog(t, func() {
		if err := logger.LogEvent(context.Background(), event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	for _, want := range []string{
		"USER_LOGIN_FAILED:",
		"user_id=7",
		"email=maria@example.com",
		"success=false",
		`error="bad credentials"`,
		"timestamp=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log line to contain %q, got %q", want, out)
		}
	}
}

func TestLogAuditLogger_LogEvent_Metadata(t *testing.T) {
	logger := NewLogAuditLogger()

	event := domain.NewAuditEvent(domain.UserLogoutEvent, 3).WithMetadata("revoked", int64(4))

	out := captureLog(t, func() {
		if err := logger.LogEvent(context.Background(), event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(out, "revoked=4") {
		t.Errorf("expected metadata in log line, got %q", out)
	}
	if !strings.Contains(out, "success=true") {
		t.Errorf("expected success flag, got %q", out)
	}
}

func TestLogAuditLogger_NilEvent(t *testing.T) {
	logger := NewLogAuditLogger()

	if err := logger.LogEvent(context.Background(), nil); err != nil {
		t.Errorf("expected nil event to be a no-op, got %v", err)
	}
}
