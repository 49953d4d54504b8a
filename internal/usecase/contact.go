package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"corvus-contact/internal/domain"
	"corvus-contact/pkg/email"
	"corvus-contact/pkg/security"
)

// ContactConfig holds the fixed addresses used by the contact flow
type ContactConfig struct {
	FromEmail string
	ToEmail   string // Operator inbox for notifications
}

type contactUsecase struct {
	sender   email.Sender
	cfg      ContactConfig
	log      *slog.Logger
	security *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase. A nil sender means the
// email provider is not configured and every submission is rejected with
// domain.ErrEmailNotConfigured.
func NewContactUsecase(sender email.Sender, cfg ContactConfig, log *slog.Logger, sec *security.SecurityLogger) domain.ContactUsecase {
	if log == nil {
		log = slog.Default()
	}
	if sec == nil {
		sec = security.NewSecurityLogger(nil, "corvus-contact", "")
	}
	return &contactUsecase{
		sender:   sender,
		cfg:      cfg,
		log:      log,
		security: sec,
	}
}

// SubmitContact sends the admin notification and then the acknowledgment.
// The acknowledgment is never attempted if the notification fails. Neither
// send is retried.
func (uc *contactUsecase) SubmitContact(ctx context.Context, sub *domain.ContactSubmission) error {
	requestID := domain.RequestIDFromContext(ctx)

	if sub == nil || !sub.HasRequiredFields() {
		uc.security.Log(ctx, security.SecurityEvent{
			Event:     security.EventValidationFailed,
			RequestID: requestID,
			Details:   map[string]interface{}{"reason": "missing required fields"},
		})
		return domain.ErrMissingFields
	}

	if uc.sender == nil {
		uc.log.Error("contact submission rejected", "reason", "email service not configured")
		uc.security.Log(ctx, security.SecurityEvent{
			Event:     security.EventServiceMisconfig,
			RequestID: requestID,
			Details:   map[string]interface{}{"component": "email"},
		})
		return domain.ErrEmailNotConfigured
	}

	data := email.ContactEmailData{
		Name:    sub.Name,
		Email:   sub.Email,
		Company: sub.Company,
		Message: sub.Message,
	}

	adminHTML, err := email.RenderAdminNotification(data)
	if err != nil {
		return uc.deliveryFailed(ctx, sub, requestID, "admin_notification", err)
	}
	adminID, err := uc.sender.Send(ctx, email.Message{
		From:    uc.cfg.FromEmail,
		To:      []string{uc.cfg.ToEmail},
		ReplyTo: sub.Email,
		Subject: email.AdminNotificationSubject,
		HTML:    adminHTML,
	})
	if err != nil {
		return uc.deliveryFailed(ctx, sub, requestID, "admin_notification", err)
	}

	ackHTML, err := email.RenderAcknowledgment(data)
	if err != nil {
		return uc.deliveryFailed(ctx, sub, requestID, "acknowledgment", err)
	}
	ackID, err := uc.sender.Send(ctx, email.Message{
		From:    uc.cfg.FromEmail,
		To:      []string{sub.Email},
		Subject: email.AcknowledgmentSubject,
		HTML:    ackHTML,
	})
	if err != nil {
		return uc.deliveryFailed(ctx, sub, requestID, "acknowledgment", err)
	}

	uc.log.Info("contact emails sent",
		"request_id", requestID,
		"admin_message_id", adminID,
		"ack_message_id", ackID,
	)
	return nil
}

func (uc *contactUsecase) deliveryFailed(ctx context.Context, sub *domain.ContactSubmission, requestID, stage string, err error) error {
	uc.log.Error("Error sending email", "request_id", requestID, "stage", stage, "error", err)
	uc.security.LogDeliveryFailed(ctx, sub.Email, requestID, stage, err)
	return fmt.Errorf("%w: %s: %v", domain.ErrEmailDeliveryFailed, stage, err)
}
