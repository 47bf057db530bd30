package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arjaygg/teampulse/schema"
)

// wiqlResponse is the shape of a query-by-WIQL response.
type wiqlResponse struct {
	WorkItems []struct {
		ID int `json:"id"`
	} `json:"workItems"`
}

// itemsBatchResponse is the shape of a work items batch response.
type itemsBatchResponse struct {
	Value []rawWorkItem `json:"value"`
}

// updatesResponse is one page of a work item's revision history.
type updatesResponse struct {
	Count int         `json:"count"`
	Value []rawUpdate `json:"value"`
}

// FetchWorkItems implements the contract.TrackerClient interface. It runs a
// WIQL query for items changed within the window, then resolves the
// returned IDs to full snapshots in batches.
func (c *Client) FetchWorkItems(ctx context.Context, start, end time.Time) ([]schema.WorkItem, error) {
	ids, err := c.queryChangedItemIDs(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	items := make([]schema.WorkItem, 0, len(ids))
	for offset := 0; offset < len(ids); offset += maxBatchSize {
		batch := ids[offset:min(offset+maxBatchSize, len(ids))]
		chunk, err := c.fetchItemBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		items = append(items, chunk...)
	}
	return items, nil
}

// FetchUpdates implements the contract.TrackerClient interface. Revision
// histories are fetched per item by a worker pool; pages are followed until
// a short page signals the end.
func (c *Client) FetchUpdates(ctx context.Context, ids []int) ([]schema.UpdateEvent, error) {
	idCh := make(chan int, len(ids))
	resultCh := make(chan []schema.UpdateEvent, len(ids))
	errCh := make(chan error, len(ids))

	var wg sync.WaitGroup
	for range c.workers {
		wg.Go(func() {
			for id := range idCh {
				updates, err := c.fetchItemUpdates(ctx, id)
				if err != nil {
					errCh <- fmt.Errorf("updates for item %d: %w", id, err)
					continue
				}
				resultCh <- updates
			}
		})
	}

	for _, id := range ids {
		idCh <- id
	}
	close(idCh)
	wg.Wait()
	close(resultCh)
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	var all []schema.UpdateEvent
	for chunk := range resultCh {
		all = append(all, chunk...)
	}
	return all, nil
}

// queryChangedItemIDs runs a WIQL query selecting items whose ChangedDate
// falls within the window, scoped to the project (and area path when a team
// is configured). IDs come back in arbitrary order; sort for determinism.
func (c *Client) queryChangedItemIDs(ctx context.Context, start, end time.Time) ([]int, error) {
	var b strings.Builder
	b.WriteString("SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = @project")
	if c.team != "" {
		fmt.Fprintf(&b, " AND [System.AreaPath] UNDER '%s\\%s'", c.project, c.team)
	}
	fmt.Fprintf(&b, " AND [System.ChangedDate] >= '%s' AND [System.ChangedDate] <= '%s'",
		start.UTC().Format("2006-01-02"), end.UTC().Format("2006-01-02"))

	body, err := json.Marshal(map[string]string{"query": b.String()})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/_apis/wit/wiql?api-version=%s",
		c.orgURL, url.PathEscape(c.project), apiVersion)

	var resp wiqlResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("WIQL query failed: %w", err)
	}

	ids := make([]int, 0, len(resp.WorkItems))
	for _, wi := range resp.WorkItems {
		ids = append(ids, wi.ID)
	}
	sort.Ints(ids)
	return ids, nil
}

// fetchItemBatch resolves up to maxBatchSize item IDs to full snapshots.
func (c *Client) fetchItemBatch(ctx context.Context, ids []int) ([]schema.WorkItem, error) {
	body, err := json.Marshal(map[string]any{"ids": ids})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/_apis/wit/workitemsbatch?api-version=%s", c.orgURL, apiVersion)

	var resp itemsBatchResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("item batch failed: %w", err)
	}

	items := make([]schema.WorkItem, 0, len(resp.Value))
	for _, raw := range resp.Value {
		items = append(items, raw.toWorkItem())
	}
	return items, nil
}

// fetchItemUpdates pages through one item's full revision history.
func (c *Client) fetchItemUpdates(ctx context.Context, id int) ([]schema.UpdateEvent, error) {
	var all []schema.UpdateEvent
	for skip := 0; ; skip += updatesPageSize {
		endpoint := fmt.Sprintf("%s/%s/_apis/wit/workItems/%d/updates?api-version=%s&$top=%d&$skip=%d",
			c.orgURL, url.PathEscape(c.project), id, apiVersion, updatesPageSize, skip)

		var page updatesResponse
		if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}
		for _, raw := range page.Value {
			all = append(all, raw.toUpdateEvent(id))
		}
		if len(page.Value) < updatesPageSize {
			return all, nil
		}
	}
}

// doJSON performs one HTTP round trip with auth and JSON decoding.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHdr)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w. Verify the org URL and your network connection", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &apiError{Status: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
