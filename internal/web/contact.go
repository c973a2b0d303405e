package web

import (
	"net/http"

	"github.com/webxmedia/backend/internal/domain"
)

// contactData backs the contact page.
type contactData struct {
	Title     string
	Services  []string
	Form      domain.CreateContactRequest
	Error     string
	Submitted bool
}

// contactServices are the options offered in the contact form's service
// dropdown.
var contactServices = []string{
	"Web Development",
	"Digital Marketing",
	"SEO Services",
	"E-commerce Solutions",
	"Mobile App Development",
	"Branding & Design",
	"Other",
}

// Contact handles GET /contact.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contact", contactData{Title: "Contact Us", Services: contactServices})
}

// SubmitContact handles POST /contact. Fire-once: on failure the form
// re-renders with an error banner, on success a confirmation replaces it.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := domain.CreateContactRequest{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Service: r.FormValue("service"),
		Message: r.FormValue("message"),
	}

	data := contactData{Title: "Contact Us", Services: contactServices, Form: form}

	if _, err := h.contact.Submit(r.Context(), form); err != nil {
		if appErr, ok := domain.AsAppError(err); ok {
			data.Error = appErr.Message
		} else {
			data.Error = "Something went wrong. Please try again."
		}
		h.render(w, http.StatusUnprocessableEntity, "contact", data)
		return
	}

	data.Submitted = true
	data.Form = domain.CreateContactRequest{}
	h.render(w, http.StatusOK, "contact", data)
}
