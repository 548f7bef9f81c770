package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/crmboard/internal/audit"
	"github.com/dangerclosesec/crmboard/internal/middleware"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/google/uuid"
)

// Ensure ActivityService implements the audit.Logger interface
var _ audit.Logger = (*ActivityService)(nil)

// ActivityService records and queries the change history of an organization
type ActivityService struct {
	repo repository.ActivityLogRepositoryIface
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo repository.ActivityLogRepositoryIface) *ActivityService {
	return &ActivityService{
		repo: repo,
	}
}

// Record stores one activity entry, attributed to the caller in ctx.
func (s *ActivityService) Record(ctx context.Context, entry audit.Entry) error {
	log := &model.ActivityLog{
		OrganizationID: entry.OrganizationID,
		Action:         entry.Action,
		EntityType:     entry.EntityType,
		EntityID:       entry.EntityID,
		Context:        model.JSONMap(entry.Context),
		CreatedAt:      time.Now().UTC(),
	}

	if p, ok := middleware.PrincipalFrom(ctx); ok {
		log.ActorID = p.UserID
	}
	meta := middleware.RequestMetaFrom(ctx)
	log.RequestID = meta.RequestID
	log.ClientIP = meta.ClientIP
	log.UserAgent = meta.UserAgent

	return s.repo.Create(ctx, log)
}

// ActivityQuery filters the activity list
type ActivityQuery struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	StartTime  time.Time
	EndTime    time.Time
	Limit      int
	Offset     int
}

// Query lists an organization's activity, newest first
func (s *ActivityService) Query(ctx context.Context, orgID uuid.UUID, q ActivityQuery) ([]model.ActivityLog, int64, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, 0, fmt.Errorf("negative paging: %w", ErrInvalidPaging)
	}

	logs, total, err := s.repo.Query(ctx, repository.QueryParams{
		OrganizationID: orgID,
		ActorID:        q.ActorID,
		Action:         q.Action,
		EntityType:     q.EntityType,
		EntityID:       q.EntityID,
		StartTime:      q.StartTime,
		EndTime:        q.EndTime,
		Limit:          q.Limit,
		Offset:         q.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("querying activity: %w", err)
	}
	return logs, total, nil
}

// record writes an activity entry. Failures are logged only.
func record(ctx context.Context, logger audit.Logger, orgID uuid.UUID, action, entityType string, entityID uuid.UUID, details map[string]interface{}) {
	if logger == nil {
		return
	}
	err := logger.Record(ctx, audit.Entry{
		OrganizationID: orgID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID.String(),
		Context:        details,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record activity",
			"action", action,
			"entityID", entityID,
			"requestID", middleware.RequestMetaFrom(ctx).RequestID,
			"error", err)
	}
}
