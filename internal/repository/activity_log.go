package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityLogRepositoryIface interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	Query(ctx context.Context, params QueryParams) ([]model.ActivityLog, int64, error)
}

// ActivityLogRepository handles database operations for activity logs
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{
		db: db,
	}
}

// Create inserts a new activity log entry
func (r *ActivityLogRepository) Create(ctx context.Context, log *model.ActivityLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Create(log)
	if result.Error != nil {
		return fmt.Errorf("failed to create activity log: %w", classify(result.Error))
	}

	return nil
}

// QueryParams holds parameters for querying activity logs
type QueryParams struct {
	OrganizationID uuid.UUID
	ActorID        string
	Action         string
	EntityType     string
	EntityID       string
	StartTime      time.Time
	EndTime        time.Time
	Limit          int
	Offset         int
}

const defaultActivityLimit = 100

// Query retrieves activity logs of one organization, newest first
func (r *ActivityLogRepository) Query(ctx context.Context, params QueryParams) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Scopes(byOrg(params.OrganizationID))

	if params.ActorID != "" {
		query = query.Where("actor_id = ?", params.ActorID)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.EntityID != "" {
		query = query.Where("entity_id = ?", params.EntityID)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("created_at >= ?", params.StartTime.UTC())
	}
	if !params.EndTime.IsZero() {
		query = query.Where("created_at <= ?", params.EndTime.UTC())
	}

	// Get total count for pagination
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", classify(err))
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	} else {
		query = query.Limit(defaultActivityLimit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	result := query.Order("created_at DESC").Order("id DESC").Find(&logs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query activity logs: %w", classify(result.Error))
	}

	return logs, count, nil
}
