package domain

import "context"

// ContactRequest represents a contact form submission. The form posts
// multipart or urlencoded fields; JSON tags cover the session API.
type ContactRequest struct {
	FirstName string `form:"firstName" json:"firstName" binding:"required,max=100"`
	LastName  string `form:"lastName" json:"lastName" binding:"required,max=100"`
	Company   string `form:"company" json:"company" binding:"required,max=200"`
	Email     string `form:"email" json:"email" binding:"required,valid_email,max=255"`
	Country   string `form:"country" json:"country" binding:"required,max=100"`
	Phone     string `form:"phone" json:"phone" binding:"required,max=30"`
	Message   string `form:"message" json:"message" binding:"required,max=4000"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and delivers a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
