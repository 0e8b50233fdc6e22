package model

import "time"

// User is the read-only subscriber record consulted during payload enrichment.
type User struct {
	ID                    string
	Email                 string
	DisplayName           string
	SubscriptionPlan      string
	IsTrialActive         bool
	TrialEndDate          *time.Time
	SubscriptionStartedAt *time.Time
	SubscriptionEndsAt    *time.Time
}

// SiteSettings is the single-row site context record merged into payloads.
type SiteSettings struct {
	CompanyName  string
	WebsiteURL   string
	SupportEmail string
}
