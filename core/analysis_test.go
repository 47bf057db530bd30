package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

func TestRunAnalysisSnapshotOnly(t *testing.T) {
	cfg := testConfig()
	items := []schema.WorkItem{
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
			schema.FieldClosedDate:  "2025-01-05T00:00:00Z",
		}),
	}

	result := RunAnalysis(cfg, testDataset(items, nil), testDay(20))

	assert.True(t, result.DeepSkipped, "deep metrics should be skipped without update events")
	require.NotNil(t, result.CycleTime, "snapshot metrics should still run")
	require.NotNil(t, result.States)
	assert.Nil(t, result.Flow, "deep metrics should stay nil")
	assert.Nil(t, result.WIP)
	assert.Empty(t, result.ModuleErrors)
	assert.Equal(t, 1, result.Items)
}

func TestRunAnalysisFull(t *testing.T) {
	cfg := testConfig()
	items := []schema.WorkItem{
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
			schema.FieldClosedDate:  "2025-01-11T00:00:00Z",
		}),
	}
	updates := []schema.UpdateEvent{
		testTransition(1, 2, testDay(3), "New", "Active"),
		testTransition(1, 3, testDay(11), "Active", "Closed"),
	}

	result := RunAnalysis(cfg, testDataset(items, updates), testDay(20))

	assert.False(t, result.DeepSkipped)
	require.NotNil(t, result.TimeInState)
	require.NotNil(t, result.Flow)
	require.NotNil(t, result.WIP)
	require.NotNil(t, result.Sprints)
	assert.Empty(t, result.ModuleErrors)
	assert.Equal(t, 2, result.Updates)
}

func TestRunAnalysisIsDeterministic(t *testing.T) {
	cfg := testConfig()
	items := []schema.WorkItem{
		testItem(1, "Jordan Rivera", "Closed", map[string]any{
			schema.FieldCreatedDate: "2025-01-01T00:00:00Z",
			schema.FieldClosedDate:  "2025-01-11T00:00:00Z",
		}),
	}
	updates := []schema.UpdateEvent{
		testTransition(1, 2, testDay(3), "New", "Active"),
		testTransition(1, 3, testDay(11), "Active", "Closed"),
	}
	now := testDay(20)

	first := RunAnalysis(cfg, testDataset(items, updates), now)
	second := RunAnalysis(cfg, testDataset(items, updates), now)
	assert.Equal(t, first, second, "identical inputs and now should yield identical results")
}

func TestRunModuleRecoversPanics(t *testing.T) {
	result := &schema.AnalysisResult{ModuleErrors: make(map[string]string)}

	runModule(result, "exploding", func() { panic("boom") })
	runModule(result, "fine", func() {})

	assert.Contains(t, result.ModuleErrors["exploding"], "boom", "the panic message should be recorded")
	assert.NotContains(t, result.ModuleErrors, "fine", "healthy modules leave no error entry")
}

func TestModuleMemberCount(t *testing.T) {
	result := &schema.AnalysisResult{
		CycleTime: &schema.CycleTimeResult{Members: map[string]schema.MemberCycleTime{
			"a": {}, "b": {},
		}},
	}

	assert.Equal(t, 2, moduleMemberCount(result, ModuleCycleTime))
	assert.Zero(t, moduleMemberCount(result, ModuleFlow), "nil modules report zero members")
	assert.Zero(t, moduleMemberCount(result, "unknown"))
}
