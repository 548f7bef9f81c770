// internal/repository/stage.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/position"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StageRepositoryIface interface {
	List(ctx context.Context, orgID, pipelineID uuid.UUID) ([]model.Stage, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*model.Stage, error)
	Create(ctx context.Context, stage *model.Stage) error
	CreateBatch(ctx context.Context, orgID, pipelineID uuid.UUID, stages []*model.Stage) error
	Update(ctx context.Context, orgID, id uuid.UUID, patch StagePatch) (*model.Stage, error)
	Reorder(ctx context.Context, orgID, id uuid.UUID, index int) ([]model.Stage, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) (*model.Stage, error)
	DeleteWithCards(ctx context.Context, orgID, id uuid.UUID) (*model.Stage, int64, error)
}

// StagePatch lists the fields an update may change. Nil fields are kept.
type StagePatch struct {
	Name  *string
	Color *string
	Kind  *model.StageKind
}

type StageRepository struct {
	db *gorm.DB
}

func NewStageRepository(db *gorm.DB) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) List(ctx context.Context, orgID, pipelineID uuid.UUID) ([]model.Stage, error) {
	var stages []model.Stage
	err := r.db.WithContext(ctx).
		Scopes(byOrg(orgID), orderedByPosition).
		Where("pipeline_id = ?", pipelineID).
		Find(&stages).Error
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", classify(err))
	}
	return stages, nil
}

func (r *StageRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.Stage, error) {
	var stage model.Stage
	if err := r.db.WithContext(ctx).Scopes(byOrg(orgID)).First(&stage, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStageNotFound
		}
		return nil, fmt.Errorf("finding stage: %w", classify(err))
	}
	return &stage, nil
}

// Create appends the stage to its pipeline.
func (r *StageRepository) Create(ctx context.Context, stage *model.Stage) error {
	return r.CreateBatch(ctx, stage.OrganizationID, stage.PipelineID, []*model.Stage{stage})
}

// CreateBatch appends stages in the order given, all or none.
func (r *StageRepository) CreateBatch(ctx context.Context, orgID, pipelineID uuid.UUID, stages []*model.Stage) error {
	if len(stages) == 0 {
		return domain.ErrEmptyBatch
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockPipeline(tx, orgID, pipelineID); err != nil {
			return err
		}

		items, err := loadOrder(tx, &model.Stage{}, "pipeline_id", pipelineID)
		if err != nil {
			return err
		}
		// close any gaps before appending so the new stages follow directly
		if err := applyOrder(tx, &model.Stage{}, items, position.Normalize(items)); err != nil {
			return err
		}

		next := position.Next(len(items))
		for i, stage := range stages {
			stage.OrganizationID = orgID
			stage.PipelineID = pipelineID
			stage.Position = next + i
		}

		if err := tx.Create(stages).Error; err != nil {
			return fmt.Errorf("creating stages: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPipelineNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *StageRepository) Update(ctx context.Context, orgID, id uuid.UUID, patch StagePatch) (*model.Stage, error) {
	updates := stageUpdates(patch)
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Stage{}).
			Scopes(byOrg(orgID)).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("updating stage: %w", classify(result.Error))
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrStageNotFound
		}
	}

	return r.Get(ctx, orgID, id)
}

// Reorder moves a stage to index within its pipeline and returns the
// pipeline's stages in their new order.
func (r *StageRepository) Reorder(ctx context.Context, orgID, id uuid.UUID, index int) ([]model.Stage, error) {
	var pipelineID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stage, err := findStage(tx, orgID, id)
		if err != nil {
			return err
		}
		if _, err := lockPipeline(tx, orgID, stage.PipelineID); err != nil {
			return err
		}
		pipelineID = stage.PipelineID

		items, err := loadOrder(tx, &model.Stage{}, "pipeline_id", pipelineID)
		if err != nil {
			return err
		}
		order := position.Move(position.Normalize(items), id, index)
		return applyOrder(tx, &model.Stage{}, items, order)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	return r.List(ctx, orgID, pipelineID)
}

// Delete removes the stage and lets the foreign key cascade remove its cards.
func (r *StageRepository) Delete(ctx context.Context, orgID, id uuid.UUID) (*model.Stage, error) {
	var deleted *model.Stage

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stage, err := findStage(tx, orgID, id)
		if err != nil {
			return err
		}
		if _, err := lockPipeline(tx, orgID, stage.PipelineID); err != nil {
			return err
		}

		if err := tx.Delete(&model.Stage{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting stage: %w", classify(err))
		}
		deleted = stage
		return renumber(tx, &model.Stage{}, "pipeline_id", stage.PipelineID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}
	return deleted, nil
}

// DeleteWithCards removes the stage's cards explicitly before the stage and
// reports how many cards went with it.
func (r *StageRepository) DeleteWithCards(ctx context.Context, orgID, id uuid.UUID) (*model.Stage, int64, error) {
	var (
		deleted *model.Stage
		removed int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stage, err := findStage(tx, orgID, id)
		if err != nil {
			return err
		}
		if _, err := lockPipeline(tx, orgID, stage.PipelineID); err != nil {
			return err
		}

		ids, err := deleteStageCards(tx, id)
		if err != nil {
			return err
		}
		removed = int64(len(ids))

		if err := tx.Delete(&model.Stage{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting stage: %w", classify(err))
		}
		deleted = stage
		return renumber(tx, &model.Stage{}, "pipeline_id", stage.PipelineID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("transaction failed: %w", err)
	}
	return deleted, removed, nil
}

func stageUpdates(patch StagePatch) map[string]any {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Kind != nil {
		updates["kind"] = *patch.Kind
	}
	return updates
}

func findStage(tx *gorm.DB, orgID, id uuid.UUID) (*model.Stage, error) {
	var stage model.Stage
	if err := tx.Scopes(byOrg(orgID)).First(&stage, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStageNotFound
		}
		return nil, fmt.Errorf("finding stage: %w", classify(err))
	}
	return &stage, nil
}

// deleteStageCards removes every card of a stage and returns the count.
// deleteStageCards removes the cards of a stage and returns their ids.
func deleteStageCards(tx *gorm.DB, stageID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := tx.Model(&model.Card{}).Where("stage_id = ?", stageID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("finding stage cards: %w", classify(err))
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := tx.Where("id IN ?", ids).Delete(&model.Card{}).Error; err != nil {
		return nil, fmt.Errorf("deleting stage cards: %w", classify(err))
	}
	return ids, nil
}
