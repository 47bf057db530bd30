package schema

import "time"

// AnalysisRun is one recorded analysis run in the tracking store.
type AnalysisRun struct {
	ID           int64      `json:"id"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Items        int        `json:"items"`
	Updates      int        `json:"updates"`
	Members      int        `json:"members"`
	ConfigParams string     `json:"configParams,omitempty"` // JSON-encoded
}

// ModuleRecord is one metric module's outcome within an analysis run.
type ModuleRecord struct {
	RunID     int64     `json:"runId"`
	Module    string    `json:"module"`
	Members   int       `json:"members"`
	Succeeded bool      `json:"succeeded"`
	Error     string    `json:"error,omitempty"`
	Recorded  time.Time `json:"recorded"`
}

// StoreStatus summarizes a persistence store for status commands.
type StoreStatus struct {
	Backend string `json:"backend"`
	Entries int    `json:"entries"`
	Bytes   int64  `json:"bytes"`
	Path    string `json:"path,omitempty"`
}
