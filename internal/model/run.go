package model

import "time"

// RunStatus tracks the lifecycle of a batch scrape run in the run store.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one batch invocation over a list of URLs.
type Run struct {
	ID          string    `json:"id"`
	URLCount    int       `json:"url_count"`
	RecordCount int       `json:"record_count"`
	Status      RunStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
