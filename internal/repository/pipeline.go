// internal/repository/pipeline.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PipelineRepositoryIface interface {
	List(ctx context.Context, orgID uuid.UUID) ([]model.Pipeline, error)
	Get(ctx context.Context, orgID, id uuid.UUID, withCards bool) (*model.Pipeline, error)
	Create(ctx context.Context, pipeline *model.Pipeline) error
	Update(ctx context.Context, orgID, id uuid.UUID, patch PipelinePatch) (*model.Pipeline, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// PipelinePatch lists the fields an update may change. Nil fields are kept.
type PipelinePatch struct {
	Name      *string
	Status    *model.PipelineStatus
	IsDefault *bool
}

type PipelineRepository struct {
	db *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) *PipelineRepository {
	return &PipelineRepository{db: db}
}

// List returns the organization's pipelines with their stages in position order
func (r *PipelineRepository) List(ctx context.Context, orgID uuid.UUID) ([]model.Pipeline, error) {
	var pipelines []model.Pipeline
	err := ExecuteWithRetry(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Scopes(byOrg(orgID)).
			Preload("Stages", orderedByPosition).
			Order("is_default DESC").Order("created_at ASC").
			Find(&pipelines).Error
	})
	if err != nil {
		return nil, fmt.Errorf("listing pipelines: %w", classify(err))
	}
	return pipelines, nil
}

// Get returns one pipeline; withCards also loads every stage's cards.
func (r *PipelineRepository) Get(ctx context.Context, orgID, id uuid.UUID, withCards bool) (*model.Pipeline, error) {
	var pipeline model.Pipeline
	err := ExecuteWithRetry(ctx, func(ctx context.Context) error {
		q := r.db.WithContext(ctx).Scopes(byOrg(orgID)).Preload("Stages", orderedByPosition)
		if withCards {
			q = q.Preload("Stages.Cards", orderedByPosition)
		}
		return q.First(&pipeline, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPipelineNotFound
		}
		return nil, fmt.Errorf("finding pipeline: %w", classify(err))
	}
	return &pipeline, nil
}

// Create inserts the pipeline and its nested stages. Stages are positioned in
// the order given.
func (r *PipelineRepository) Create(ctx context.Context, pipeline *model.Pipeline) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if pipeline.IsDefault {
			if err := clearDefault(tx, pipeline.OrganizationID); err != nil {
				return err
			}
		}

		for i := range pipeline.Stages {
			pipeline.Stages[i].OrganizationID = pipeline.OrganizationID
			pipeline.Stages[i].Position = i
		}

		if err := tx.Create(pipeline).Error; err != nil {
			return fmt.Errorf("creating pipeline: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *PipelineRepository) Update(ctx context.Context, orgID, id uuid.UUID, patch PipelinePatch) (*model.Pipeline, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Pipeline
		if err := forUpdate(tx).Scopes(byOrg(orgID)).First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPipelineNotFound
			}
			return fmt.Errorf("finding pipeline: %w", classify(err))
		}

		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if patch.IsDefault != nil {
			if *patch.IsDefault && !current.IsDefault {
				if err := clearDefault(tx, orgID); err != nil {
					return err
				}
			}
			updates["is_default"] = *patch.IsDefault
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&current).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating pipeline: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPipelineNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	return r.Get(ctx, orgID, id, false)
}

// Delete removes the pipeline. Stages and cards go with it through the
// foreign key cascade.
func (r *PipelineRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(byOrg(orgID)).Delete(&model.Pipeline{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting pipeline: %w", classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return domain.ErrPipelineNotFound
	}
	return nil
}

func clearDefault(tx *gorm.DB, orgID uuid.UUID) error {
	err := tx.Model(&model.Pipeline{}).
		Where("organization_id = ? AND is_default = ?", orgID, true).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("clearing default pipeline: %w", classify(err))
	}
	return nil
}

// lockPipeline loads and locks a tenant's pipeline inside tx.
func lockPipeline(tx *gorm.DB, orgID, id uuid.UUID) (*model.Pipeline, error) {
	var pipeline model.Pipeline
	if err := forUpdate(tx).Scopes(byOrg(orgID)).First(&pipeline, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPipelineNotFound
		}
		return nil, fmt.Errorf("locking pipeline: %w", classify(err))
	}
	return &pipeline, nil
}
