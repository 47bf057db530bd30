package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// FileClient serves a pre-exported dataset from local JSON files. It
// implements the same interface as the REST client so the analysis engine
// does not know or care where the data came from.
type FileClient struct {
	itemsPath   string
	updatesPath string
}

var _ contract.TrackerClient = &FileClient{} // Compile-time check

// NewFileClient creates an offline tracker client. updatesPath may be
// empty, in which case only snapshot metrics have data to work with.
func NewFileClient(itemsPath, updatesPath string) *FileClient {
	return &FileClient{itemsPath: itemsPath, updatesPath: updatesPath}
}

// FetchWorkItems implements the contract.TrackerClient interface. The time
// window is ignored; exported files are taken as-is.
func (c *FileClient) FetchWorkItems(_ context.Context, _, _ time.Time) ([]schema.WorkItem, error) {
	data, err := os.ReadFile(c.itemsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	var raw []rawWorkItem
	if err := json.Unmarshal(data, &raw); err != nil {
		// Tolerate the REST batch envelope as well as a bare array.
		var envelope itemsBatchResponse
		if envErr := json.Unmarshal(data, &envelope); envErr != nil {
			return nil, fmt.Errorf("items file %q is not valid JSON: %w", c.itemsPath, err)
		}
		raw = envelope.Value
	}

	items := make([]schema.WorkItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, r.toWorkItem())
	}
	return items, nil
}

// FetchUpdates implements the contract.TrackerClient interface. The ID list
// is used as a filter when non-empty.
func (c *FileClient) FetchUpdates(_ context.Context, ids []int) ([]schema.UpdateEvent, error) {
	if c.updatesPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.updatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read updates file: %w", err)
	}

	var raw []rawUpdate
	if err := json.Unmarshal(data, &raw); err != nil {
		var envelope updatesResponse
		if envErr := json.Unmarshal(data, &envelope); envErr != nil {
			return nil, fmt.Errorf("updates file %q is not valid JSON: %w", c.updatesPath, err)
		}
		raw = envelope.Value
	}

	var want map[int]bool
	if len(ids) > 0 {
		want = make(map[int]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
	}

	var events []schema.UpdateEvent
	for _, r := range raw {
		ev := r.toUpdateEvent(r.WorkItemID)
		if want != nil && !want[ev.WorkItemID] {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
