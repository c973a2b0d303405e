package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webxmedia/backend/internal/domain"
)

type memContactStore struct {
	forms []*domain.ContactForm
}

func (m *memContactStore) Create(ctx context.Context, form *domain.ContactForm) error {
	m.forms = append(m.forms, form)
	return nil
}

func (m *memContactStore) ListAll(ctx context.Context, limit int) ([]*domain.ContactForm, error) {
	return m.forms, nil
}

func TestContactSubmit(t *testing.T) {
	store := &memContactStore{}
	svc := NewContactService(store, zerolog.Nop())

	form, err := svc.Submit(context.Background(), domain.CreateContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1 555 0100",
		Service: "SEO Optimization",
		Message: "Need help ranking our product pages.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, form.ID)
	assert.False(t, form.CreatedAt.IsZero())
	require.Len(t, store.forms, 1)
	assert.Equal(t, "Jane Doe", store.forms[0].Name)
}

func TestContactSubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CreateContactRequest
	}{
		{
			name: "missing name",
			req:  domain.CreateContactRequest{Email: "a@b.com", Service: "SEO", Message: "hi"},
		},
		{
			name: "bad email",
			req:  domain.CreateContactRequest{Name: "Jane", Email: "not-an-email", Service: "SEO", Message: "hi"},
		},
		{
			name: "missing message",
			req:  domain.CreateContactRequest{Name: "Jane", Email: "a@b.com", Service: "SEO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memContactStore{}
			svc := NewContactService(store, zerolog.Nop())

			_, err := svc.Submit(context.Background(), tt.req)
			require.Error(t, err)
			appErr, ok := domain.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 422, appErr.Code)
			assert.Empty(t, store.forms)
		})
	}
}
