package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlan(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "known plan", code: "silver", want: "silver"},
		{name: "custom plan", code: "custom", want: "custom"},
		{name: "unknown falls back to bronze", code: "platinum", want: "bronze"},
		{name: "empty falls back to bronze", code: "", want: "bronze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlan(tt.code)
			assert.Equal(t, tt.want, got.Code)
			assert.NotEmpty(t, got.Name)
			assert.NotEmpty(t, got.Features)
		})
	}
}

func TestAvailablePlansHaveOneCustom(t *testing.T) {
	var customs int
	for _, p := range AvailablePlans() {
		if p.IsCustom {
			customs++
			assert.Zero(t, p.BasePrice, "custom plan has no base price")
		} else {
			assert.Positive(t, p.BasePrice)
		}
	}
	assert.Equal(t, 1, customs)
}

func TestKnownPlan(t *testing.T) {
	assert.True(t, KnownPlan("gold"))
	assert.False(t, KnownPlan("platinum"))
	assert.False(t, KnownPlan(""))
}
