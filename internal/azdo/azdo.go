// Package azdo talks to an Azure DevOps-compatible work tracking server
// over its REST API, and also serves pre-exported datasets from local JSON
// files through the same interface.
package azdo

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/arjaygg/teampulse/internal/contract"
)

const (
	apiVersion = "7.0"

	// Item snapshot batch endpoint accepts at most 200 IDs per request.
	maxBatchSize = 200

	// Updates endpoint page size.
	updatesPageSize = 200

	defaultTimeout = 30 * time.Second
)

// Client fetches work items and their revision histories from the tracker
// REST API.
type Client struct {
	orgURL  string
	project string
	team    string
	authHdr string
	workers int
	http    *http.Client
}

var _ contract.TrackerClient = &Client{} // Compile-time check

// NewClient creates a tracker client. The PAT is sent as basic auth with an
// empty username, which is what the tracker expects.
func NewClient(cfg *contract.Config) *Client {
	token := base64.StdEncoding.EncodeToString([]byte(":" + cfg.PAT))
	return &Client{
		orgURL:  cfg.OrgURL,
		project: cfg.Project,
		team:    cfg.Team,
		authHdr: "Basic " + token,
		workers: cfg.Workers,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// apiError carries the HTTP status and server message for a failed call.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("tracker API returned %d: %s", e.Status, e.Message)
}
