package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/webxmedia/backend/internal/domain"
)

// ContactStore is the persistence boundary for contact-form leads.
type ContactStore interface {
	Create(ctx context.Context, form *domain.ContactForm) error
	ListAll(ctx context.Context, limit int) ([]*domain.ContactForm, error)
}

// ContactService stores and lists contact-form submissions.
type ContactService struct {
	store    ContactStore
	validate *validator.Validate
	log      zerolog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(store ContactStore, log zerolog.Logger) *ContactService {
	return &ContactService{
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Submit validates and stores one lead.
func (s *ContactService) Submit(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactForm, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation("name, email, service and message are required")
	}

	form := domain.NewContactForm(req)
	if err := s.store.Create(ctx, form); err != nil {
		s.log.Error().Err(err).Msg("failed to store contact form")
		return nil, domain.ErrInternal("failed to submit contact form", err)
	}

	s.log.Info().Str("service", form.Service).Msg("contact form submitted")
	return form, nil
}

// List returns stored leads, newest first.
func (s *ContactService) List(ctx context.Context) ([]*domain.ContactForm, error) {
	forms, err := s.store.ListAll(ctx, 1000)
	if err != nil {
		return nil, domain.ErrInternal("failed to list contact forms", err)
	}
	return forms, nil
}
