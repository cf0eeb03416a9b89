package sync

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MrCamelHub/Trade-in/internal/business"
	"github.com/MrCamelHub/Trade-in/internal/entity"
	"github.com/MrCamelHub/Trade-in/pkg/ginx"
)

// triggerRequest body of POST /invoice/sync
type triggerRequest struct {
	// DryRun defaults to true: a manual trigger must opt in to mutations.
	DryRun *bool `json:"dry_run"`
}

// Trigger enqueues a sync job
// POST /invoice/sync
func (h *Handler) Trigger(c *gin.Context) {
	req := triggerRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			ginx.BadRequestWithValidation(c, err)
			return
		}
	}

	dryRun := true
	if req.DryRun != nil {
		dryRun = *req.DryRun
	}

	job := &business.SyncJob{
		DryRun:      dryRun,
		Trigger:     entity.TriggerHTTP,
		RequestedAt: time.Now(),
	}

	data, err := job.Encode()
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	jobID, err := h.enqueuer.Publish(h.queue, data, 0, 0)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "[HTTP] enqueue sync job failed: %v", err)
		ginx.InternalError(c, "failed to enqueue sync job")
		return
	}

	ginx.Queued(c, jobID, "/sync/runs/latest")
}

// GetRun returns one persisted run by id; the reserved id "latest"
// returns the most recent run
// GET /sync/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	runID := c.Param("id")
	if runID == "" {
		ginx.BadRequest(c, "run id required")
		return
	}

	var (
		run *entity.SyncRun
		err error
	)
	if runID == "latest" {
		run, err = h.runs.GetLatestRun(c.Request.Context())
	} else {
		run, err = h.runs.GetRun(c.Request.Context(), runID)
	}
	if err != nil {
		ginx.NotFound(c, "sync run not found")
		return
	}

	ginx.Success(c, runView(run))
}

// runView renders a persisted run with its full result payload
func runView(run *entity.SyncRun) gin.H {
	var result json.RawMessage
	if len(run.ResultJSON) > 0 {
		result = json.RawMessage(run.ResultJSON)
	}

	return gin.H{
		"run_id":           run.ID,
		"trigger":          run.Trigger,
		"status":           run.Status,
		"dry_run":          run.DryRun,
		"duration_seconds": run.DurationSeconds,
		"error":            run.ErrorMessage,
		"started_at":       run.StartedAt,
		"finished_at":      run.FinishedAt,
		"result":           result,
	}
}
