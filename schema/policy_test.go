package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	policy := DefaultStatePolicy()

	tests := []struct {
		state string
		want  StateClass
	}{
		{"Active", ActiveClass},
		{"In Progress", ActiveClass},
		{"Resolved", ActiveClass},
		{"New", WaitClass},
		{"Blocked", WaitClass},
		{"Closed", OtherClass},          // completed states are neither active nor wait
		{"Custom Triage", OtherClass},   // unknown state
		{"active", OtherClass},          // matching is case-sensitive
		{"", OtherClass},                // empty state
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Classify(tt.state), "Classify(%q)", tt.state)
		})
	}
}

func TestIsActiveIsCompleted(t *testing.T) {
	policy := DefaultStatePolicy()

	assert.True(t, policy.IsActive("Doing"), "Doing should be active")
	assert.False(t, policy.IsActive("To Do"), "To Do should not be active")

	assert.True(t, policy.IsCompleted("Done"), "Done should be completed")
	assert.True(t, policy.IsCompleted("Removed"), "Removed should be completed")
	assert.False(t, policy.IsCompleted("Resolved"), "Resolved should not be completed")
}

func TestRateFlowEfficiency(t *testing.T) {
	tests := []struct {
		pct  float64
		want FlowRating
	}{
		{55, ExcellentRating},
		{40, ExcellentRating}, // band bounds are inclusive at the bottom
		{39.9, GoodRating},
		{25, GoodRating},
		{24.9, FairRating},
		{15, FairRating},
		{14.9, PoorRating},
		{0, PoorRating},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RateFlowEfficiency(tt.pct), "RateFlowEfficiency(%v)", tt.pct)
	}
}
