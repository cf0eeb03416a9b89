package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/MrCamelHub/Trade-in/internal/entity"
	"github.com/MrCamelHub/Trade-in/internal/reconcile"
)

// SyncRunDAO sync-run history access object
type SyncRunDAO struct {
	db *gorm.DB
}

// NewSyncRunDAO opens the database and creates the DAO
func NewSyncRunDAO(dsn string) (*SyncRunDAO, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SyncRunDAO{db: db}, nil
}

// NewSyncRunDAOWithDB wraps an existing gorm handle (used by tests)
func NewSyncRunDAOWithDB(db *gorm.DB) *SyncRunDAO {
	return &SyncRunDAO{db: db}
}

// RecordRun persists one full-sync result
func (dao *SyncRunDAO) RecordRun(ctx context.Context, trigger string, result *reconcile.FullSyncResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal sync result: %w", err)
	}

	run := &entity.SyncRun{
		ID:              result.RunID,
		Trigger:         trigger,
		Status:          result.Status,
		DryRun:          result.DryRun,
		DurationSeconds: result.DurationSeconds,
		ErrorMessage:    result.Error,
		ResultJSON:      resultJSON,
		StartedAt:       result.StartedAt,
		FinishedAt:      result.FinishedAt,
	}

	if pass := result.InvoiceUpdate; pass != nil && pass.Run != nil {
		run.InvoiceTotal = pass.Run.TotalProcessed
		run.InvoiceSuccess = pass.Run.SuccessCount
		run.InvoiceFailure = pass.Run.FailureCount
	}
	if pass := result.DeliveryCompletion; pass != nil && pass.Run != nil {
		run.CompleteTotal = pass.Run.TotalProcessed
		run.CompleteSuccess = pass.Run.SuccessCount
		run.CompleteFailure = pass.Run.FailureCount
	}

	if err := dao.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}

	return nil
}

// GetRun fetches one run by id
func (dao *SyncRunDAO) GetRun(ctx context.Context, runID string) (*entity.SyncRun, error) {
	var run entity.SyncRun
	if err := dao.db.WithContext(ctx).Where("id = ?", runID).First(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}
	return &run, nil
}

// GetLatestRun fetches the most recent run
func (dao *SyncRunDAO) GetLatestRun(ctx context.Context) (*entity.SyncRun, error) {
	var run entity.SyncRun
	if err := dao.db.WithContext(ctx).Order("started_at DESC").First(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest sync run: %w", err)
	}
	return &run, nil
}

// Migrate creates the sync_runs table when missing
func (dao *SyncRunDAO) Migrate() error {
	return dao.db.AutoMigrate(&entity.SyncRun{})
}

// Close closes the underlying connection
func (dao *SyncRunDAO) Close() error {
	sqlDB, err := dao.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
