// internal/repository/batch.go
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

type BatchRepositoryIface interface {
	ApplyBatch(ctx context.Context, orgID uuid.UUID, items []BatchItem) (*BatchResult, error)
}

const (
	BatchKindStage = "stage"
	BatchKindCard  = "card"

	BatchActionDelete = "delete"
	BatchActionUpdate = "update"
)

// BatchItem is one entry of a mixed batch. Stage is read for stage updates,
// Card for card updates.
type BatchItem struct {
	Kind   string
	Action string
	ID     uuid.UUID
	Stage  StagePatch
	Card   CardPatch
}

// BatchResult counts what a batch changed. CascadedCards are the cards that
// went with deleted stages and are not part of CardsDeleted.
type BatchResult struct {
	StagesDeleted int64       `json:"stagesDeleted"`
	StagesUpdated int64       `json:"stagesUpdated"`
	CardsDeleted  int64       `json:"cardsDeleted"`
	CardsUpdated  int64       `json:"cardsUpdated"`
	CascadedCards int64       `json:"cascadedCards"`
	PipelineIDs   []uuid.UUID `json:"-"`
}

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// ApplyBatch runs every item in one transaction. Any failing item rolls the
// whole batch back. Sibling sets touched by deletes are renumbered at the end.
func (r *BatchRepository) ApplyBatch(ctx context.Context, orgID uuid.UUID, items []BatchItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	result := &BatchResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pipelines := map[uuid.UUID]struct{}{}
		stages := map[uuid.UUID]struct{}{}
		deletedStages := map[uuid.UUID]struct{}{}
		cascaded := map[uuid.UUID]struct{}{}

		for _, item := range items {
			switch item.Kind {
			case BatchKindStage:
				stage, err := findStage(tx, orgID, item.ID)
				if err != nil {
					return err
				}
				pipelines[stage.PipelineID] = struct{}{}

				switch item.Action {
				case BatchActionDelete:
					ids, err := deleteStageCards(tx, stage.ID)
					if err != nil {
						return err
					}
					if err := tx.Delete(&model.Stage{}, "id = ?", stage.ID).Error; err != nil {
						return fmt.Errorf("deleting stage: %w", classify(err))
					}
					for _, id := range ids {
						cascaded[id] = struct{}{}
					}
					result.CascadedCards += int64(len(ids))
					result.StagesDeleted++
					deletedStages[stage.ID] = struct{}{}
				case BatchActionUpdate:
					if err := updateStageTx(tx, orgID, stage.ID, item.Stage); err != nil {
						return err
					}
					result.StagesUpdated++
				default:
					return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, item.Action)
				}

			case BatchKindCard:
				card, err := findCard(tx, orgID, item.ID)
				if err != nil {
					// already removed with a stage deleted earlier in this batch
					if _, gone := cascaded[item.ID]; gone && item.Action == BatchActionDelete {
						continue
					}
					return err
				}
				pipelines[card.PipelineID] = struct{}{}

				switch item.Action {
				case BatchActionDelete:
					if err := tx.Delete(&model.Card{}, "id = ?", card.ID).Error; err != nil {
						return fmt.Errorf("deleting card: %w", classify(err))
					}
					result.CardsDeleted++
					stages[card.StageID] = struct{}{}
				case BatchActionUpdate:
					if err := updateCardTx(tx, orgID, card.ID, item.Card); err != nil {
						return err
					}
					result.CardsUpdated++
				default:
					return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, item.Action)
				}

			default:
				return fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidInput, item.Kind)
			}
		}

		for stageID := range stages {
			if _, gone := deletedStages[stageID]; gone {
				continue
			}
			if err := renumber(tx, &model.Card{}, "stage_id", stageID); err != nil {
				return err
			}
		}
		for pipelineID := range pipelines {
			if len(deletedStages) > 0 {
				if err := renumber(tx, &model.Stage{}, "pipeline_id", pipelineID); err != nil {
					return err
				}
			}
			result.PipelineIDs = append(result.PipelineIDs, pipelineID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}
	return result, nil
}

func updateStageTx(tx *gorm.DB, orgID, id uuid.UUID, patch StagePatch) error {
	updates := stageUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	err := tx.Model(&model.Stage{}).Scopes(byOrg(orgID)).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("updating stage: %w", classify(err))
	}
	return nil
}

func updateCardTx(tx *gorm.DB, orgID, id uuid.UUID, patch CardPatch) error {
	updates := cardUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	if patch.ClientID != nil && !patch.ClearClient {
		if _, err := findClient(tx, orgID, *patch.ClientID); err != nil {
			return err
		}
	}
	err := tx.Model(&model.Card{}).Scopes(byOrg(orgID)).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("updating card: %w", classify(err))
	}
	return nil
}
