package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateCheckoutValidation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	tests := []struct {
		name  string
		order Order
		msg   string
	}{
		{
			name:  "missing email",
			order: Order{PlanType: "silver"},
			msg:   "Please enter your email address",
		},
		{
			name:  "custom plan zero amount",
			order: Order{PlanType: "custom", CustomerEmail: "a@b.com", IsCustom: true, Amount: 0},
			msg:   "Please enter a valid amount",
		},
		{
			name:  "custom plan negative amount",
			order: Order{PlanType: "custom", CustomerEmail: "a@b.com", IsCustom: true, Amount: -5},
			msg:   "Please enter a valid amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.InitiateCheckout(context.Background(), tt.order)
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.msg, vErr.Msg)
		})
	}

	assert.Zero(t, calls.Load(), "validation failures must not hit the network")
}

func TestInitiateCheckoutSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/checkout/session", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "custom", req["plan_type"])
		assert.Equal(t, "jane@example.com", req["customer_email"])
		assert.Equal(t, 37.5, req["custom_amount"])

		json.NewEncoder(w).Encode(map[string]string{
			"url":        "https://pay.example.com/cs_123",
			"session_id": "cs_123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	url, err := client.InitiateCheckout(context.Background(), Order{
		PlanType:      "custom",
		CustomerEmail: "jane@example.com",
		IsCustom:      true,
		Amount:        37.50,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_123", url)
}

func TestInitiateCheckoutOmitsCustomAmountForCatalogPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req["custom_amount"])
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example.com/x", "session_id": "x"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).InitiateCheckout(context.Background(), Order{
		PlanType:      "silver",
		CustomerEmail: "jane@example.com",
		Amount:        100,
	})
	require.NoError(t, err)
}

func TestInitiateCheckoutServerError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "server detail preferred",
			status: http.StatusBadRequest,
			body:   `{"error":"Invalid plan type"}`,
			want:   "Invalid plan type",
		},
		{
			name:   "fastapi-style detail accepted",
			status: http.StatusInternalServerError,
			body:   `{"detail":"gateway unavailable"}`,
			want:   "gateway unavailable",
		},
		{
			name:   "generic fallback",
			status: http.StatusBadGateway,
			body:   `oops`,
			want:   "Failed to create checkout session",
		},
		{
			name:   "2xx without url treated as server error",
			status: http.StatusOK,
			body:   `{"session_id":"cs_9"}`,
			want:   "Failed to create checkout session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).InitiateCheckout(context.Background(), Order{
				PlanType:      "silver",
				CustomerEmail: "jane@example.com",
			})
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
			var vErr *ValidationError
			assert.False(t, errors.As(err, &vErr), "server failures are not validation errors")
		})
	}
}
