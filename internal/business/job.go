package business

import (
	"encoding/json"
	"fmt"
	"time"
)

// SyncJob queued request for one full sync run
type SyncJob struct {
	DryRun      bool      `json:"dry_run"`
	Trigger     string    `json:"trigger"` // scheduler | http | manual
	RequestedAt time.Time `json:"requested_at"`
}

// Encode serializes the job for the queue
func (j *SyncJob) Encode() ([]byte, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("marshal sync job failed: %w", err)
	}
	return data, nil
}

// DecodeSyncJob parses a queued job payload
func DecodeSyncJob(data []byte) (*SyncJob, error) {
	var job SyncJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal sync job failed: %w", err)
	}
	return &job, nil
}
