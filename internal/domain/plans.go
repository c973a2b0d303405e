package domain

// Plan represents a service package the agency sells.
type Plan struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	BasePrice    float64  `json:"basePrice"` // USD; 0 for the custom plan
	Features     []string `json:"features"`
	DeliveryTime string   `json:"deliveryTime"`
	Popular      bool     `json:"popular"`  // show "Most Popular" badge
	IsCustom     bool     `json:"isCustom"` // price supplied by the customer
}

// AvailablePlans returns all plans in display order.
func AvailablePlans() []Plan {
	return []Plan{
		{
			Code:      "bronze",
			Name:      "Bronze Plan",
			BasePrice: 50,
			Features: []string{
				"5-page responsive website",
				"Basic SEO optimization",
				"Contact form integration",
				"1 month support",
				"Mobile-friendly design",
				"Social media integration",
			},
			DeliveryTime: "2-3 weeks",
		},
		{
			Code:      "silver",
			Name:      "Silver Plan",
			BasePrice: 100,
			Features: []string{
				"10-page responsive website",
				"Advanced SEO optimization",
				"E-commerce functionality",
				"3 months support",
				"Custom design",
				"Analytics integration",
				"Blog setup",
				"Email marketing setup",
			},
			DeliveryTime: "3-4 weeks",
			Popular:      true,
		},
		{
			Code:      "gold",
			Name:      "Gold Plan",
			BasePrice: 250,
			Features: []string{
				"Unlimited pages",
				"Premium SEO package",
				"Full e-commerce platform",
				"6 months support",
				"Custom development",
				"Advanced integrations",
				"Performance optimization",
				"Digital marketing setup",
				"Priority support",
			},
			DeliveryTime: "4-6 weeks",
		},
		{
			Code: "custom",
			Name: "Custom Plan",
			Features: []string{
				"Tailored to your needs",
				"Custom functionality",
				"Unlimited revisions",
				"Extended support",
				"Premium integrations",
				"Dedicated project manager",
			},
			DeliveryTime: "Varies",
			IsCustom:     true,
		},
	}
}

// ResolvePlan returns the plan for the given code, or the bronze plan when the
// code is unknown or empty.
func ResolvePlan(code string) Plan {
	for _, p := range AvailablePlans() {
		if p.Code == code {
			return p
		}
	}
	return AvailablePlans()[0]
}

// KnownPlan reports whether code names a plan in the catalog.
func KnownPlan(code string) bool {
	for _, p := range AvailablePlans() {
		if p.Code == code {
			return true
		}
	}
	return false
}
