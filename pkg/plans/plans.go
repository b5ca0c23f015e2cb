package plans

import "encoding/json"

type PlanType string

const (
	FreePlan     PlanType = "free"
	StarterPlan  PlanType = "starter"
	CreatorPlan  PlanType = "creator"
	BusinessPlan PlanType = "business"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Unlimited is the quota sentinel for plans without a monthly cap.
const Unlimited = -1

// Price is either a fixed {monthly, yearly} pair or custom ("contact sales").
type Price struct {
	Monthly float64
	Yearly  float64
	Custom  bool
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Custom {
		return json.Marshal("custom")
	}
	return json.Marshal(map[string]float64{
		"monthly": p.Monthly,
		"yearly":  p.Yearly,
	})
}

type PlanLimits struct {
	Name           string   `json:"name"`
	VideosPerMonth int      `json:"videos_per_month"`
	Features       []string `json:"features"`
	Price          Price    `json:"price"`
}

var PlanCatalog = map[PlanType]PlanLimits{
	FreePlan: {
		Name:           "Free",
		VideosPerMonth: 3,
		Features: []string{
			"3 videos/month",
			"Basic content generation",
			"Twitter & LinkedIn posts",
			"Email support",
		},
		Price: Price{Monthly: 0, Yearly: 0},
	},
	StarterPlan: {
		Name:           "Starter",
		VideosPerMonth: 30,
		Features: []string{
			"30 videos/month",
			"Ideas generator",
			"Multi-format export",
			"Scheduling & tags",
			"Email support",
		},
		Price: Price{Monthly: 19, Yearly: 15},
	},
	CreatorPlan: {
		Name:           "Creator",
		VideosPerMonth: Unlimited,
		Features: []string{
			"Unlimited videos",
			"Content inspirations",
			"Analytics dashboard",
			"Priority support",
			"API access",
			"Team collaboration",
		},
		Price: Price{Monthly: 39, Yearly: 29},
	},
	BusinessPlan: {
		Name:           "Business",
		VideosPerMonth: Unlimited,
		Features: []string{
			"Unlimited videos",
			"Multi-account management",
			"Custom reports",
			"Dedicated manager",
			"Priority chat support",
			"White-label options",
		},
		Price: Price{Custom: true},
	},
}

func IsValidPlan(plan PlanType) bool {
	_, exists := PlanCatalog[plan]
	return exists
}

// VideoLimit returns the monthly quota for a plan, Unlimited for uncapped plans.
func VideoLimit(plan PlanType) int {
	return PlanCatalog[plan].VideosPerMonth
}

// HasReachedLimit reports whether a user with the given usage is at or over
// the plan's monthly quota. Always false for unlimited plans.
func HasReachedLimit(plan PlanType, videosGenerated int) bool {
	limit := PlanCatalog[plan].VideosPerMonth
	if limit == Unlimited {
		return false
	}
	return videosGenerated >= limit
}

// RemainingVideos returns how many videos the user can still generate this
// month. Never negative; Unlimited for uncapped plans.
func RemainingVideos(plan PlanType, videosGenerated int) int {
	limit := PlanCatalog[plan].VideosPerMonth
	if limit == Unlimited {
		return Unlimited
	}
	remaining := limit - videosGenerated
	if remaining < 0 {
		return 0
	}
	return remaining
}

func DisplayName(plan PlanType) string {
	return PlanCatalog[plan].Name
}

// QuotaJSON renders a quota the way API responses expect it: the number, or
// the string "unlimited".
func QuotaJSON(limit int) interface{} {
	if limit == Unlimited {
		return "unlimited"
	}
	return limit
}

// PriceFor returns the per-month price under the given billing cycle and
// whether the plan is custom-priced.
func PriceFor(plan PlanType, cycle BillingCycle) (float64, bool) {
	price := PlanCatalog[plan].Price
	if price.Custom {
		return 0, true
	}
	if cycle == BillingYearly {
		return price.Yearly, false
	}
	return price.Monthly, false
}
