package plan_test

import (
	"testing"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		name            string
		plan            string
		wantPages       int
		wantWhatsapp    int
		wantAutomations *int
	}{
		{"LimitsFor_None", plan.PlanNone, 0, 0, intPtr(0)},
		{"LimitsFor_Trial", plan.PlanTrial, 1, 1, intPtr(50)},
		{"LimitsFor_Starter", plan.PlanStarter, 1, 1, intPtr(100)},
		{"LimitsFor_Professional", plan.PlanProfessional, 2, 1, intPtr(500)},
		{"LimitsFor_Business", plan.PlanBusiness, 2, 1, nil},
		{"LimitsFor_Lifetime", plan.PlanLifetime, 2, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plan.LimitsFor(tt.plan)
			assert.Equal(t, tt.wantPages, got.MaxFacebookPages)
			assert.Equal(t, tt.wantWhatsapp, got.MaxWhatsappAccounts)
			if tt.wantAutomations == nil {
				assert.Nil(t, got.MaxAutomationsPerMonth)
			} else {
				require.NotNil(t, got.MaxAutomationsPerMonth)
				assert.Equal(t, *tt.wantAutomations, *got.MaxAutomationsPerMonth)
			}
		})
	}
}

func TestLimitsFor_UnknownPlan(t *testing.T) {
	got := plan.LimitsFor("enterprise-custom")
	assert.Equal(t, plan.LimitsFor(plan.PlanNone), got)

	got = plan.LimitsFor("")
	assert.Equal(t, 0, got.MaxFacebookPages)
	assert.Equal(t, 0, got.MaxWhatsappAccounts)
}

func intPtr(v int) *int { return &v }
