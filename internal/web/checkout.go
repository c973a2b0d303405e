package web

import (
	"net/http"
	"strings"

	"github.com/webxmedia/backend/internal/domain"
	"github.com/webxmedia/backend/pkg/checkout"
)

// checkoutData backs the checkout form view. The order is rebuilt from the
// query string and form input on every render; nothing is kept between
// requests.
type checkoutData struct {
	Title        string
	Plan         domain.Plan
	Amount       float64
	Email        string
	CustomAmount string
	Error        string
}

// Checkout handles GET /checkout?plan=X&price=Y.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	plan := domain.ResolvePlan(r.URL.Query().Get("plan"))
	amount, _ := domain.ComputeAmount(plan, r.URL.Query().Get("price"), "")
	h.render(w, http.StatusOK, "checkout", checkoutData{
		Title:  "Checkout",
		Plan:   plan,
		Amount: amount,
	})
}

// SubmitCheckout handles POST /checkout. On success the customer is redirected
// to the hosted payment page; on failure the form re-renders with the inputs
// preserved so they can correct and retry.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	plan := domain.ResolvePlan(r.FormValue("plan"))
	email := r.FormValue("email")
	customInput := r.FormValue("amount")

	data := checkoutData{
		Title:        "Checkout",
		Plan:         plan,
		Email:        email,
		CustomAmount: customInput,
	}

	amount, err := domain.ComputeAmount(plan, r.FormValue("price"), customInput)
	if err != nil {
		if appErr, ok := domain.AsAppError(err); ok {
			data.Error = appErr.Message
		} else {
			data.Error = "Please enter a valid amount"
		}
		h.render(w, http.StatusUnprocessableEntity, "checkout", data)
		return
	}
	data.Amount = amount

	order := domain.Order{Plan: plan, Amount: amount, CustomerEmail: email}
	redirectURL, err := h.client.InitiateCheckout(r.Context(), checkout.Order{
		PlanType:      order.Plan.Code,
		CustomerEmail: order.CustomerEmail,
		IsCustom:      order.Plan.IsCustom,
		Amount:        order.Amount,
	})
	if err != nil {
		data.Error = err.Error()
		status := http.StatusBadGateway
		if _, ok := err.(*checkout.ValidationError); ok {
			status = http.StatusUnprocessableEntity
		}
		h.render(w, status, "checkout", data)
		return
	}

	// Control leaves the application here; the customer comes back on the
	// success or cancel route.
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

// successData backs the post-payment result views.
type successData struct {
	Title     string
	SessionID string
	Message   string
	Details   *checkout.PaymentDetails
	Currency  string
}

// CheckoutSuccess handles GET /checkout/success?session_id=... by polling the
// status endpoint until the payment resolves or the attempt budget runs out.
func (h *Handler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	poller := checkout.NewPoller(h.client, h.pollOpts...)
	res, err := poller.Run(r.Context(), sessionID)
	if err != nil {
		// Client navigated away mid-poll; nothing left to render.
		return
	}

	switch res.State {
	case checkout.StateSuccess:
		h.render(w, http.StatusOK, "checkout_success", successData{
			Title:     "Payment Successful",
			SessionID: sessionID,
			Details:   res.Details,
			Currency:  strings.ToUpper(res.Details.Currency),
		})
	default:
		h.render(w, http.StatusOK, "checkout_error", successData{
			Title:     "Payment Status Unclear",
			SessionID: sessionID,
			Message:   res.Message,
		})
	}
}

// CheckoutCancel handles GET /checkout/cancel.
func (h *Handler) CheckoutCancel(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "checkout_cancel", pageData{Title: "Payment Cancelled"})
}
