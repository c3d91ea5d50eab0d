package domain

import "strings"

// Plan enumerates subscription tiers.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

const (
	// FreeSearchAllotment is the number of searches a fresh free account starts with.
	FreeSearchAllotment = 5
	// FreeAICreditAllotment is the number of AI credits a fresh free account starts with.
	FreeAICreditAllotment = 50
	// UnlimitedQuota is stored in both counters of paid accounts. It is a
	// display value only; paid accounts are never decremented.
	UnlimitedQuota = 99999
)

// ParsePlan maps user supplied text to a Plan.
func ParsePlan(raw string) (Plan, error) {
	switch Plan(strings.ToLower(strings.TrimSpace(raw))) {
	case PlanFree:
		return PlanFree, nil
	case PlanPro:
		return PlanPro, nil
	case PlanBusiness:
		return PlanBusiness, nil
	}
	return "", ErrUnsupportedPlan
}

// IsFree reports whether the plan is metered.
func (p Plan) IsFree() bool {
	return p == PlanFree
}

// Profile carries display-only account attributes.
type Profile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ReferralCode   string `json:"referral_code"`
	ReferralsCount int    `json:"referrals_count"`
	IsNewUser      bool   `json:"is_new_user"`
}

// Account is the metered state of the signed-in user.
type Account struct {
	Profile
	Plan               Plan `json:"plan"`
	SearchRemaining    int  `json:"searches_remaining"`
	AICreditsRemaining int  `json:"ai_credits_remaining"`
}
