package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// leaseKey the lock key guarding "is a sync already running".
const leaseKey = "tradein:sync:lease"

// ErrLeaseHeld another sync run currently holds the lease.
var ErrLeaseHeld = errors.New("sync lease already held")

// RunLease single-flight guard around sync runs, backed by redislock
type RunLease struct {
	client *redis.Client
	locker *redislock.Client
	ttl    time.Duration
}

// NewRunLease connects to redis and creates the lease guard
func NewRunLease(addr, password string, db int, ttl time.Duration) (*RunLease, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RunLease{
		client: client,
		locker: redislock.New(client),
		ttl:    ttl,
	}, nil
}

// Lease a held lease token
type Lease struct {
	lock *redislock.Lock
}

// Acquire obtains the run lease or fails fast with ErrLeaseHeld.
// No retry: an overlapping trigger is dropped, not queued behind the lock.
func (r *RunLease) Acquire(ctx context.Context) (*Lease, error) {
	lock, err := r.locker.Obtain(ctx, leaseKey, r.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLeaseHeld
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain sync lease: %w", err)
	}

	return &Lease{lock: lock}, nil
}

// Release frees the lease. Safe to call when the TTL already expired.
func (l *Lease) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}

// Close closes the redis connection
func (r *RunLease) Close() error {
	return r.client.Close()
}
