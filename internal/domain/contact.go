package domain

import (
	"context"
	"errors"
)

// Contact errors returned by the usecase and mapped to HTTP responses by the handler
var (
	ErrMissingFields       = errors.New("name, email and message are required")
	ErrEmailNotConfigured  = errors.New("email service is not configured")
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)

// ContactSubmission represents a contact form submission.
// Only presence of name, email and message is checked server-side.
type ContactSubmission struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	Email   string `json:"email" example:"ada@example.com"`
	Company string `json:"company,omitempty" example:"Analytical Engines"`
	Message string `json:"message" example:"We'd like to talk about automating our back office."`
}

// HasRequiredFields reports whether name, email and message are all non-empty
func (s *ContactSubmission) HasRequiredFields() bool {
	return s.Name != "" && s.Email != "" && s.Message != ""
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates the submission and sends the admin notification
	// followed by the submitter acknowledgment
	SubmitContact(ctx context.Context, sub *ContactSubmission) error
}
