// Package plan holds the immutable subscription plan capability table.
package plan

// Limits describes the capability numbers derived from a subscription plan.
// A nil MaxAutomationsPerMonth means unlimited.
type Limits struct {
	MaxFacebookPages       int  `json:"maxFacebookPages"`
	MaxWhatsappAccounts    int  `json:"maxWhatsappAccounts"`
	MaxAutomationsPerMonth *int `json:"maxAutomationsPerMonth"`
}

const (
	PlanNone         = "none"
	PlanTrial        = "trial"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanBusiness     = "business"
	PlanLifetime     = "lifetime"
)

var (
	trialAutomations        = 50
	starterAutomations      = 100
	professionalAutomations = 500

	limitsByPlan = map[string]Limits{
		PlanNone:         {MaxFacebookPages: 0, MaxWhatsappAccounts: 0, MaxAutomationsPerMonth: intPtr(0)},
		PlanTrial:        {MaxFacebookPages: 1, MaxWhatsappAccounts: 1, MaxAutomationsPerMonth: &trialAutomations},
		PlanStarter:      {MaxFacebookPages: 1, MaxWhatsappAccounts: 1, MaxAutomationsPerMonth: &starterAutomations},
		PlanProfessional: {MaxFacebookPages: 2, MaxWhatsappAccounts: 1, MaxAutomationsPerMonth: &professionalAutomations},
		PlanBusiness:     {MaxFacebookPages: 2, MaxWhatsappAccounts: 1, MaxAutomationsPerMonth: nil},
		PlanLifetime:     {MaxFacebookPages: 2, MaxWhatsappAccounts: 1, MaxAutomationsPerMonth: nil},
	}
)

func intPtr(v int) *int { return &v }

// LimitsFor returns the capability limits for a plan name. Unknown or empty
// plans resolve to the "none" row.
func LimitsFor(planName string) Limits {
	if l, ok := limitsByPlan[planName]; ok {
		return l
	}
	return limitsByPlan[PlanNone]
}
