package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/audit"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/validation"
)

// EmailSender is the slice of the email service the contact usecase needs.
type EmailSender interface {
	SendContactEmail(data email.ContactEmailData) error
	IsConfigured() bool
}

type contactUsecase struct {
	sender EmailSender
	audit  *audit.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender EmailSender, auditLog *audit.Logger) domain.ContactUsecase {
	return &contactUsecase{sender: sender, audit: auditLog}
}

// SendContactMessage re-validates the submission and delivers it by email.
// The re-check runs even though callers validate first: a snapshot handed in
// by other code paths must not bypass validation.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Company = strings.TrimSpace(req.Company)
	req.Email = strings.TrimSpace(req.Email)
	req.Country = strings.TrimSpace(req.Country)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if req.FirstName == "" || req.LastName == "" || req.Company == "" ||
		req.Email == "" || req.Country == "" || req.Phone == "" || req.Message == "" {
		uc.auditEvent(audit.EventValidationFailed, map[string]interface{}{"reason": "missing fields"})
		return fmt.Errorf("all fields are required")
	}
	if !validation.ValidEmail(req.Email) {
		uc.auditEvent(audit.EventValidationFailed, map[string]interface{}{"reason": "invalid email"})
		return fmt.Errorf("email format is invalid")
	}
	if !validation.ValidPhone(req.Phone, "") {
		uc.auditEvent(audit.EventValidationFailed, map[string]interface{}{"reason": "invalid phone"})
		return fmt.Errorf("phone format is invalid")
	}

	if !uc.sender.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}

	data := email.ContactEmailData{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Email:     req.Email,
		Country:   req.Country,
		Phone:     req.Phone,
		Message:   req.Message,
	}
	if err := uc.sender.SendContactEmail(data); err != nil {
		uc.auditEvent(audit.EventSubmissionFailed, map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	uc.auditEvent(audit.EventSubmissionAccepted, nil)
	return nil
}

func (uc *contactUsecase) auditEvent(event audit.EventType, details map[string]interface{}) {
	if uc.audit != nil {
		uc.audit.Event(event, "", "", details)
	}
}
