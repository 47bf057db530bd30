package core

import (
	"context"
	"fmt"

	"github.com/arjaygg/teampulse/core/timeline"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// Dataset is the fully materialized input of one analysis run: item
// snapshots, their raw update events, and the per-item grouping the deep
// metrics consume.
type Dataset struct {
	Items   []schema.WorkItem
	Updates []schema.UpdateEvent

	// ByItem holds each item's updates sorted ascending by revision.
	ByItem map[int][]schema.UpdateEvent
}

// HasUpdates reports whether any revision history was available. Deep
// metrics are skipped entirely when it is false.
func (d *Dataset) HasUpdates() bool {
	return len(d.Updates) > 0
}

// buildDataset fetches items and updates through the tracker client and
// indexes the updates by item.
func buildDataset(ctx context.Context, cfg *contract.Config, client contract.TrackerClient) (*Dataset, error) {
	items, err := client.FetchWorkItems(ctx, cfg.GetAnalysisStartTime(), cfg.GetAnalysisEndTime())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no work items found between %s and %s",
			cfg.StartTime.Format("2006-01-02"), cfg.EndTime.Format("2006-01-02"))
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	updates, err := client.FetchUpdates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update events: %w", err)
	}

	return &Dataset{
		Items:   items,
		Updates: updates,
		ByItem:  timeline.GroupUpdates(updates),
	}, nil
}
