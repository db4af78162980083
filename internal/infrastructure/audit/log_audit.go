package audit

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// LogAuditLogger implements domain.AuditLogger by writing structured
// key=value lines to the process log. It never returns an error: the audit
// sink is informed, not consulted.
type LogAuditLogger struct{}

// NewLogAuditLogger creates a log-backed audit logger
func NewLogAuditLogger() domain.AuditLogger {
	return &LogAuditLogger{}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	if event == nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: user_id=%d", event.EventType, event.UserID)
	if event.Email != "" {
		fmt.Fprintf(&b, " email=%s", event.Email)
	}
	fmt.Fprintf(&b, " success=%t", event.Success)
	if event.ErrorMsg != "" {
		fmt.Fprintf(&b, " error=%q", event.ErrorMsg)
	}
	for k, v := range event.Metadata {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	fmt.Fprintf(&b, " timestamp=%s", event.Timestamp.UTC().Format(time.RFC3339))

	log.Print(b.String())
	return nil
}
