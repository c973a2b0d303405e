package handler

import (
	"net/http"

	"github.com/webxmedia/backend/internal/domain"
	"github.com/webxmedia/backend/internal/service"
)

// ContactHandler handles contact-form endpoints.
type ContactHandler struct {
	svc *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	if _, err := h.svc.Submit(r.Context(), req); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Contact form submitted successfully",
	})
}

// List handles GET /api/contact (admin only, gated in router).
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.svc.List(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	if forms == nil {
		forms = []*domain.ContactForm{}
	}
	JSON(w, http.StatusOK, forms)
}
