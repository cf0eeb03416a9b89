package business

import (
	"context"

	"github.com/MrCamelHub/Trade-in/internal/reconcile"
	redisinfra "github.com/MrCamelHub/Trade-in/pkg/infra/redis"
	"github.com/MrCamelHub/Trade-in/pkg/logger"
)

// Lease a held single-flight token
type Lease interface {
	Release(ctx context.Context) error
}

// LeaseGuard single-flight guard around sync runs
type LeaseGuard interface {
	// Acquire obtains the lease or fails fast with redis.ErrLeaseHeld.
	Acquire(ctx context.Context) (Lease, error)
}

// RunRecorder persists finished runs
type RunRecorder interface {
	RecordRun(ctx context.Context, trigger string, result *reconcile.FullSyncResult) error
}

// Notifier delivers run summaries
type Notifier interface {
	NotifySyncResult(ctx context.Context, result *reconcile.FullSyncResult) error
}

// SyncService wraps the orchestrator with the run lease, run history and
// notification. This is the entry point the worker and HTTP layer share.
type SyncService struct {
	orchestrator *reconcile.Orchestrator
	lease        LeaseGuard
	recorder     RunRecorder
	notifier     Notifier
	logger       logger.Logger
}

// NewSyncService creates the sync service
func NewSyncService(
	orchestrator *reconcile.Orchestrator,
	lease LeaseGuard,
	recorder RunRecorder,
	notifier Notifier,
	log logger.Logger,
) *SyncService {
	return &SyncService{
		orchestrator: orchestrator,
		lease:        lease,
		recorder:     recorder,
		notifier:     notifier,
		logger:       log,
	}
}

// RunFullSync acquires the lease, runs both passes, persists and notifies.
// Returns redis.ErrLeaseHeld when another run is in flight.
func (s *SyncService) RunFullSync(ctx context.Context, dryRun bool, trigger string) (*reconcile.FullSyncResult, error) {
	ctx = logger.WithTrigger(ctx, trigger)

	lease, err := s.lease.Acquire(ctx)
	if err != nil {
		if err == redisinfra.ErrLeaseHeld {
			s.logger.Warnf(ctx, "[SyncService] sync already running, dropping trigger")
		}
		return nil, err
	}
	defer func() {
		if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			s.logger.Warnf(ctx, "[SyncService] lease release failed: %v", releaseErr)
		}
	}()

	result := s.orchestrator.RunFullSync(ctx, dryRun)

	// Run history and notification never fail a finished run.
	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, trigger, result); err != nil {
			s.logger.Errorf(ctx, "[SyncService] record run failed: %v", err)
		}
	}
	if s.notifier != nil && !result.DryRun {
		if err := s.notifier.NotifySyncResult(ctx, result); err != nil {
			s.logger.Warnf(ctx, "[SyncService] notify failed: %v", err)
		}
	}

	return result, nil
}

// OrdersNeedingUpdate read-only discovery for the check endpoints
func (s *SyncService) OrdersNeedingUpdate(ctx context.Context) ([]*reconcile.Candidate, map[reconcile.SkipReason]int) {
	return s.orchestrator.OrdersNeedingInvoiceUpdate(ctx)
}

// OrdersNeedingDeliveryCompletion read-only discovery for the check endpoints
func (s *SyncService) OrdersNeedingDeliveryCompletion(ctx context.Context) ([]*reconcile.Candidate, map[reconcile.SkipReason]int) {
	return s.orchestrator.OrdersNeedingDeliveryCompletion(ctx)
}

// redisLeaseGuard adapts the redis lease to the LeaseGuard interface
type redisLeaseGuard struct {
	inner *redisinfra.RunLease
}

// NewRedisLeaseGuard wraps the redis-backed run lease
func NewRedisLeaseGuard(inner *redisinfra.RunLease) LeaseGuard {
	return &redisLeaseGuard{inner: inner}
}

// Acquire obtains the redis lease
func (g *redisLeaseGuard) Acquire(ctx context.Context) (Lease, error) {
	lease, err := g.inner.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return lease, nil
}
