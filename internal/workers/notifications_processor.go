// internal/workers/notifications_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-be/internal/pkg/config"
)

// SendMailFunc matches smtp.SendMail
type SendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// NotificationProcessor emails low-stock alerts
type NotificationProcessor struct {
	config   config.NotificationsConfig
	sendMail SendMailFunc
	logger   *slog.Logger
}

// NewNotificationProcessor creates a new notification processor. Without
// an SMTP host alerts are only logged.
func NewNotificationProcessor(cfg config.NotificationsConfig, logger *slog.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		config:   cfg,
		sendMail: smtp.SendMail,
		logger:   logger.With(slog.String("processor", "notification")),
	}
}

// WithSendMail replaces the mail transport
func (p *NotificationProcessor) WithSendMail(fn SendMailFunc) *NotificationProcessor {
	p.sendMail = fn
	return p
}

// SendLowStockAlert notifies the configured recipients about an item that
// needs reordering
func (p *NotificationProcessor) SendLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var payload LowStockPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	subject, body := lowStockMessage(payload)

	p.logger.InfoContext(ctx, "low stock alert",
		slog.String("item_id", payload.ItemID),
		slog.Int("quantity", payload.Quantity),
		slog.String("status", string(payload.Status)))

	if p.config.SMTPHost == "" || len(p.config.AlertTo) == 0 {
		p.logger.DebugContext(ctx, "smtp not configured, alert logged only",
			slog.String("subject", subject))
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		p.config.From, strings.Join(p.config.AlertTo, ", "), subject, body,
	))

	var auth smtp.Auth
	if p.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", p.config.SMTPUsername, p.config.SMTPPassword, p.config.SMTPHost)
	}

	addr := net.JoinHostPort(p.config.SMTPHost, p.config.SMTPPort)
	if err := p.sendMail(addr, auth, p.config.From, p.config.AlertTo, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	p.logger.InfoContext(ctx, "alert email sent",
		slog.Int("recipients", len(p.config.AlertTo)))
	return nil
}

func lowStockMessage(p LowStockPayload) (string, string) {
	subject := fmt.Sprintf("[%s] %s %s", strings.ToUpper(string(p.Status)), p.ItemID, p.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Item %s (%s) needs attention.\r\n\r\n", p.ItemID, p.Name)
	fmt.Fprintf(&b, "Status: %s\r\n", p.Status)
	fmt.Fprintf(&b, "Quantity: %d\r\n", p.Quantity)
	if p.ReorderLevel != nil {
		fmt.Fprintf(&b, "Reorder level: %d\r\n", *p.ReorderLevel)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\r\n", p.Location)
	}
	if p.SupplierID != "" {
		fmt.Fprintf(&b, "Supplier: %s\r\n", p.SupplierID)
	}
	return subject, b.String()
}
