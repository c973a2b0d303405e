package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmountCatalogPlans(t *testing.T) {
	silver := ResolvePlan("silver")

	tests := []struct {
		name     string
		override string
		want     float64
	}{
		{name: "no override uses base price", override: "", want: 100},
		{name: "numeric override wins", override: "80", want: 80},
		{name: "decimal override", override: "99.99", want: 99.99},
		{name: "non-numeric override ignored", override: "abc", want: 100},
		{name: "negative override ignored", override: "-5", want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeAmount(silver, tt.override, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeAmountCustomPlan(t *testing.T) {
	custom := ResolvePlan("custom")

	t.Run("valid amount", func(t *testing.T) {
		got, err := ComputeAmount(custom, "", "37.50")
		require.NoError(t, err)
		assert.Equal(t, 37.50, got)
	})

	t.Run("override does not apply to custom plans", func(t *testing.T) {
		_, err := ComputeAmount(custom, "500", "")
		assert.Error(t, err)
	})

	invalid := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "zero", input: "0"},
		{name: "negative", input: "-10"},
		{name: "non-numeric", input: "ten dollars"},
		{name: "too many decimals", input: "10.555"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeAmount(custom, "", tt.input)
			require.Error(t, err)
			appErr, ok := AsAppError(err)
			require.True(t, ok, "expected an AppError")
			assert.Equal(t, "Please enter a valid amount", appErr.Message)
		})
	}
}
