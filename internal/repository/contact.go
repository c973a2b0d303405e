package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webxmedia/backend/internal/domain"
)

// ContactRepository handles database operations for contact-form leads.
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new lead.
func (r *ContactRepository) Create(ctx context.Context, form *domain.ContactForm) error {
	query := `
		INSERT INTO contact_forms (id, name, email, phone, service, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		form.ID, form.Name, form.Email, form.Phone, form.Service, form.Message, form.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact form: %w", err)
	}
	return nil
}

// ListAll returns leads newest first, up to limit.
func (r *ContactRepository) ListAll(ctx context.Context, limit int) ([]*domain.ContactForm, error) {
	query := `
		SELECT id, name, email, phone, service, message, created_at
		FROM contact_forms ORDER BY created_at DESC LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact forms: %w", err)
	}
	defer rows.Close()

	var forms []*domain.ContactForm
	for rows.Next() {
		var f domain.ContactForm
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Service, &f.Message, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact form: %w", err)
		}
		forms = append(forms, &f)
	}
	return forms, nil
}
