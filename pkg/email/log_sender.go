package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// LogSender logs outbound messages instead of delivering them. Used when
// EMAIL_DRY_RUN is set for local development.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	id := fmt.Sprintf("dryrun-%d", time.Now().UnixNano())
	s.log.Info("email_dry_run", "message_id", id, "to", msg.To, "subject", msg.Subject)
	return id, nil
}
