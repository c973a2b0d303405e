package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContactForm is a stored lead from the contact page.
type ContactForm struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactRequest is the body of POST /api/contact.
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// NewContactForm builds a stored lead from a submission.
func NewContactForm(req CreateContactRequest) *ContactForm {
	return &ContactForm{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
}
