// Package entitlement decides whether an account may spend quota. Every
// function here is pure: it takes an account value and returns a new one, so
// callers own synchronisation and persistence.
package entitlement

import "geniemetrics/internal/domain"

// Decision is the outcome of a consumption attempt. Limit is set only when
// the attempt was denied.
type Decision struct {
	Authorized bool
	Account    domain.Account
	Limit      *domain.LimitSignal
}

// NewFreeAccount returns a free account with the fresh allotments.
func NewFreeAccount(profile domain.Profile) domain.Account {
	return domain.Account{
		Profile:            profile,
		Plan:               domain.PlanFree,
		SearchRemaining:    domain.FreeSearchAllotment,
		AICreditsRemaining: domain.FreeAICreditAllotment,
	}
}

// TryConsumeSearch spends one search. Paid plans are always authorized and
// returned unchanged. A free account with no searches left is denied and
// returned unchanged.
func TryConsumeSearch(acct domain.Account) (bool, domain.Account) {
	if !acct.Plan.IsFree() {
		return true, acct
	}
	if acct.SearchRemaining <= 0 {
		return false, acct
	}
	acct.SearchRemaining--
	return true, acct
}

// TryConsumeAICredits spends amount credits, all or nothing. A zero (or
// negative) amount is authorized without touching the balance.
func TryConsumeAICredits(acct domain.Account, amount int) (bool, domain.Account) {
	if !acct.Plan.IsFree() {
		return true, acct
	}
	if amount <= 0 {
		return true, acct
	}
	if acct.AICreditsRemaining < amount {
		return false, acct
	}
	acct.AICreditsRemaining -= amount
	return true, acct
}

// Consume routes a request to the matching counter and raises a LimitSignal
// of the same kind on denial.
func Consume(acct domain.Account, req domain.ConsumptionRequest) Decision {
	var (
		ok   bool
		next domain.Account
	)
	switch req.Kind {
	case domain.MeterSearch:
		ok, next = TryConsumeSearch(acct)
	case domain.MeterAICredit:
		ok, next = TryConsumeAICredits(acct, req.Amount)
	default:
		return Decision{Authorized: false, Account: acct}
	}
	if !ok {
		return Decision{Authorized: false, Account: acct, Limit: &domain.LimitSignal{Kind: req.Kind}}
	}
	return Decision{Authorized: true, Account: next}
}

// Upgrade moves a free account to Pro. Paid accounts keep their plan; both
// counters are pinned to the unlimited sentinel either way.
func Upgrade(acct domain.Account) domain.Account {
	if acct.Plan.IsFree() {
		acct.Plan = domain.PlanPro
	}
	acct.SearchRemaining = domain.UnlimitedQuota
	acct.AICreditsRemaining = domain.UnlimitedQuota
	return acct
}

// SetPlan forces a plan. Moving to free restores the fresh allotments.
func SetPlan(acct domain.Account, plan domain.Plan) domain.Account {
	acct.Plan = plan
	if plan.IsFree() {
		acct.SearchRemaining = domain.FreeSearchAllotment
		acct.AICreditsRemaining = domain.FreeAICreditAllotment
		return acct
	}
	acct.SearchRemaining = domain.UnlimitedQuota
	acct.AICreditsRemaining = domain.UnlimitedQuota
	return acct
}
