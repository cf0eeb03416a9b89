package worker

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/MrCamelHub/Trade-in/internal/business"
	redisinfra "github.com/MrCamelHub/Trade-in/pkg/infra/redis"
	"github.com/MrCamelHub/Trade-in/pkg/lmstfy"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// consume/backoff tuning. Concurrency is deliberately 1: mutating runs are
// serialized through this loop, the lease only guards other processes.
const (
	consumeTimeout = 3 * time.Second
	consumeTTR     = 30 * time.Minute
	errorBackoff   = 5 * time.Second
)

// Worker consumes queued sync jobs and runs them one at a time
type Worker struct {
	queue       string
	client      *lmstfy.Client
	syncService *business.SyncService
	closing     *atomic.Bool
	doneCh      chan struct{}
	logger      logger.Logger
}

// NewWorker creates the sync worker
func NewWorker(queue string, client *lmstfy.Client, syncService *business.SyncService, log logger.Logger) *Worker {
	return &Worker{
		queue:       queue,
		client:      client,
		syncService: syncService,
		closing:     atomic.NewBool(false),
		doneCh:      make(chan struct{}),
		logger:      log,
	}
}

// Start runs the consume loop until Shutdown
func (w *Worker) Start(ctx context.Context) {
	w.logger.Infof(ctx, "[Worker] started, queue: %s", w.queue)
	defer close(w.doneCh)

	for !w.closing.Load() {
		msg, err := w.client.Consume(w.queue, consumeTimeout, consumeTTR)
		if err != nil {
			w.logger.Warnf(ctx, "[Worker] consume error: %v, retrying...", err)
			time.Sleep(errorBackoff)
			continue
		}

		// timed out without a message
		if msg == nil {
			continue
		}

		w.process(ctx, msg)
	}

	w.logger.Infof(ctx, "[Worker] consume loop exited")
}

// Shutdown stops pulling new jobs and waits for the in-flight one
func (w *Worker) Shutdown() {
	if w.closing.CAS(false, true) {
		<-w.doneCh
		w.logger.Infof(context.Background(), "[Worker] shutdown complete")
	}
}

// process runs one queued sync job
func (w *Worker) process(ctx context.Context, msg *lmstfy.Message) {
	job, err := business.DecodeSyncJob(msg.Data)
	if err != nil {
		// malformed job: ack and drop, retrying cannot help
		w.logger.Errorf(ctx, "[Worker] bad job %s: %v", msg.ID, err)
		w.ack(ctx, msg)
		return
	}

	w.logger.Infof(ctx, "[Worker] job %s: dry_run=%v trigger=%s", msg.ID, job.DryRun, job.Trigger)

	result, err := w.syncService.RunFullSync(ctx, job.DryRun, job.Trigger)
	switch {
	case err == redisinfra.ErrLeaseHeld:
		// another process holds the lease; drop this trigger
		w.logger.Warnf(ctx, "[Worker] job %s dropped: sync already running", msg.ID)
	case err != nil:
		w.logger.Errorf(ctx, "[Worker] job %s failed: %v", msg.ID, err)
	default:
		w.logger.Infof(ctx, "[Worker] job %s done: status=%s duration=%.2fs",
			msg.ID, result.Status, result.DurationSeconds)
	}

	// the run result is already persisted; the job itself is finished
	w.ack(ctx, msg)
}

// ack confirms a message, logging failures
func (w *Worker) ack(ctx context.Context, msg *lmstfy.Message) {
	if err := w.client.Ack(msg.Queue, msg.ID); err != nil {
		w.logger.Warnf(ctx, "[Worker] ack failed for %s: %v", msg.ID, err)
	}
}
