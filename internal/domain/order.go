package domain

import (
	"math"
	"strconv"
	"strings"
)

// Order is the chargeable intent derived from the checkout page's navigation
// context and form input. It is rebuilt on every render and never persisted.
type Order struct {
	Plan          Plan
	Amount        float64
	CustomerEmail string
}

// ComputeAmount resolves the final chargeable amount for a plan.
//
// For the custom plan the amount comes from customInput, which must be a
// positive number with at most two decimal places. For catalog plans the URL
// override wins when it parses as a number, otherwise the base price applies.
func ComputeAmount(plan Plan, urlOverride, customInput string) (float64, error) {
	if plan.IsCustom {
		amount, err := parseMoney(customInput)
		if err != nil {
			return 0, ErrValidation("Please enter a valid amount")
		}
		return amount, nil
	}
	if urlOverride != "" {
		if override, err := strconv.ParseFloat(urlOverride, 64); err == nil && override > 0 && !math.IsInf(override, 0) {
			return override, nil
		}
	}
	return plan.BasePrice, nil
}

// parseMoney parses a positive dollar amount with at most 2 decimal places.
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
