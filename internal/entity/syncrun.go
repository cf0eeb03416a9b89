package entity

import "time"

// Sync run triggers.
const (
	TriggerScheduler = "scheduler"
	TriggerHTTP      = "http"
	TriggerManual    = "manual"
)

// SyncRun one persisted sync run
type SyncRun struct {
	ID              string    `gorm:"column:id;primaryKey;size:36"`
	Trigger         string    `gorm:"column:trigger_type;size:16"`
	Status          string    `gorm:"column:status;size:16"` // completed | error
	DryRun          bool      `gorm:"column:dry_run"`
	InvoiceTotal    int       `gorm:"column:invoice_total"`
	InvoiceSuccess  int       `gorm:"column:invoice_success"`
	InvoiceFailure  int       `gorm:"column:invoice_failure"`
	CompleteTotal   int       `gorm:"column:complete_total"`
	CompleteSuccess int       `gorm:"column:complete_success"`
	CompleteFailure int       `gorm:"column:complete_failure"`
	DurationSeconds float64   `gorm:"column:duration_seconds"`
	ErrorMessage    string    `gorm:"column:error_message;size:1024"`
	ResultJSON      []byte    `gorm:"column:result_json;type:json"`
	StartedAt       time.Time `gorm:"column:started_at"`
	FinishedAt      time.Time `gorm:"column:finished_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName maps the entity to its table
func (SyncRun) TableName() string {
	return "sync_runs"
}
