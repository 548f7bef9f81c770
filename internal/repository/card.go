// internal/repository/card.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/position"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepositoryIface interface {
	List(ctx context.Context, orgID uuid.UUID, filter CardFilter) ([]model.Card, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*model.Card, error)
	Create(ctx context.Context, card *model.Card, index *int) error
	Update(ctx context.Context, orgID, id uuid.UUID, patch CardPatch) (*model.Card, error)
	Move(ctx context.Context, orgID uuid.UUID, params MoveParams) (*MoveResult, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) (*model.Card, error)
}

// CardFilter narrows List. Zero values match everything.
type CardFilter struct {
	PipelineID uuid.UUID
	StageID    uuid.UUID
	ClientID   uuid.UUID
}

// CardPatch lists the editable card fields. Stage and position change only
// through Move.
type CardPatch struct {
	Title         *string
	Description   *string
	Value         *float64
	Currency      *string
	Priority      *model.Priority
	ClientID      *uuid.UUID
	ClearClient   bool
	ClientName    *string
	ClientEmail   *string
	ClientCompany *string
	DueDate       *time.Time
	ClearDueDate  bool
}

// MoveParams places a card at Position inside StageID.
type MoveParams struct {
	CardID   uuid.UUID
	StageID  uuid.UUID
	Position int
}

// MoveResult describes a completed move.
type MoveResult struct {
	Card         *model.Card
	FromStageID  uuid.UUID
	FromPosition int
	ToStage      *model.Stage
}

// CrossStage reports whether the card changed stage.
func (m *MoveResult) CrossStage() bool {
	return m.FromStageID != m.ToStage.ID
}

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) List(ctx context.Context, orgID uuid.UUID, filter CardFilter) ([]model.Card, error) {
	q := r.db.WithContext(ctx).Scopes(byOrg(orgID))
	if filter.PipelineID != uuid.Nil {
		q = q.Where("pipeline_id = ?", filter.PipelineID)
	}
	if filter.StageID != uuid.Nil {
		q = q.Where("stage_id = ?", filter.StageID)
	}
	if filter.ClientID != uuid.Nil {
		q = q.Where("client_id = ?", filter.ClientID)
	}

	var cards []model.Card
	if err := q.Order("stage_id").Scopes(orderedByPosition).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("listing cards: %w", classify(err))
	}
	return cards, nil
}

func (r *CardRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.Card, error) {
	return findCard(r.db.WithContext(ctx).Preload("Client", byOrg(orgID)), orgID, id)
}

// Create places the card in its stage: appended when index is nil, otherwise
// inserted at *index with the siblings below shifted down.
func (r *CardRepository) Create(ctx context.Context, card *model.Card, index *int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stage, err := lockStage(tx, card.OrganizationID, card.StageID)
		if err != nil {
			return err
		}
		if card.PipelineID == uuid.Nil {
			card.PipelineID = stage.PipelineID
		} else if card.PipelineID != stage.PipelineID {
			return domain.ErrStageMismatch
		}

		items, err := loadOrder(tx, &model.Card{}, "stage_id", stage.ID)
		if err != nil {
			return err
		}
		order := position.Normalize(items)

		at := position.Next(len(order))
		if index != nil {
			at = position.Clamp(*index, len(order))
		}
		card.Position = at

		if card.ClientID != nil {
			if _, err := findClient(tx, card.OrganizationID, *card.ClientID); err != nil {
				return err
			}
		}

		if err := tx.Omit("Client", "Pipeline").Create(card).Error; err != nil {
			return fmt.Errorf("creating card: %w", classify(err))
		}
		return applyOrder(tx, &model.Card{}, items, position.Insert(order, card.ID, at))
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *CardRepository) Update(ctx context.Context, orgID, id uuid.UUID, patch CardPatch) (*model.Card, error) {
	updates := cardUpdates(patch)
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if patch.ClientID != nil && !patch.ClearClient {
				if _, err := findClient(tx, orgID, *patch.ClientID); err != nil {
					return err
				}
			}
			result := tx.Model(&model.Card{}).
				Scopes(byOrg(orgID)).
				Where("id = ?", id).
				Updates(updates)
			if result.Error != nil {
				return fmt.Errorf("updating card: %w", classify(result.Error))
			}
			if result.RowsAffected == 0 {
				return domain.ErrCardNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("transaction failed: %w", err)
		}
	}

	return r.Get(ctx, orgID, id)
}

// Move reorders a card inside its stage or transfers it to another stage of
// the same pipeline. Both affected stages end with dense positions.
func (r *CardRepository) Move(ctx context.Context, orgID uuid.UUID, params MoveParams) (*MoveResult, error) {
	var result MoveResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := findCard(tx, orgID, params.CardID)
		if err != nil {
			return err
		}
		dest, err := findStage(tx, orgID, params.StageID)
		if err != nil {
			return err
		}
		if dest.PipelineID != card.PipelineID {
			return domain.ErrStageMismatch
		}

		// Lock both stages in id order so opposite moves cannot deadlock,
		// then re-read the card: a concurrent move may have relocated it.
		if err := lockStages(tx, orgID, card.StageID, dest.ID); err != nil {
			return err
		}
		if card, err = findCard(tx, orgID, params.CardID); err != nil {
			return err
		}

		result.FromStageID = card.StageID
		result.FromPosition = card.Position
		result.ToStage = dest

		if card.StageID == dest.ID {
			items, err := loadOrder(tx, &model.Card{}, "stage_id", dest.ID)
			if err != nil {
				return err
			}
			order := position.Move(position.Normalize(items), card.ID, params.Position)
			return applyOrder(tx, &model.Card{}, items, order)
		}

		srcItems, err := loadOrder(tx, &model.Card{}, "stage_id", card.StageID)
		if err != nil {
			return err
		}
		dstItems, err := loadOrder(tx, &model.Card{}, "stage_id", dest.ID)
		if err != nil {
			return err
		}

		srcOrder := position.Remove(position.Normalize(srcItems), card.ID)
		dstOrder := position.Insert(position.Normalize(dstItems), card.ID, params.Position)
		at := position.Assign(dstOrder)[card.ID]

		err = tx.Model(&model.Card{}).Where("id = ?", card.ID).Updates(map[string]any{
			"stage_id": dest.ID,
			"position": at,
		}).Error
		if err != nil {
			return fmt.Errorf("moving card: %w", classify(err))
		}

		if err := applyOrder(tx, &model.Card{}, srcItems, srcOrder); err != nil {
			return err
		}
		// the moved card already carries its final position
		dstItems = append(dstItems, position.Item{ID: card.ID, Position: at})
		return applyOrder(tx, &model.Card{}, dstItems, dstOrder)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}

	card, err := r.Get(ctx, orgID, params.CardID)
	if err != nil {
		return nil, err
	}
	result.Card = card
	return &result, nil
}

// Delete removes the card and closes the gap it leaves in its stage.
func (r *CardRepository) Delete(ctx context.Context, orgID, id uuid.UUID) (*model.Card, error) {
	var deleted *model.Card

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := findCard(tx, orgID, id)
		if err != nil {
			return err
		}
		if _, err := lockStage(tx, orgID, card.StageID); err != nil {
			return err
		}
		if err := tx.Delete(&model.Card{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting card: %w", classify(err))
		}
		deleted = card
		return renumber(tx, &model.Card{}, "stage_id", card.StageID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("transaction failed: %w", err)
	}
	return deleted, nil
}

func cardUpdates(patch CardPatch) map[string]any {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Value != nil {
		updates["value"] = *patch.Value
	}
	if patch.Currency != nil {
		updates["currency"] = *patch.Currency
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.ClientID != nil {
		updates["client_id"] = *patch.ClientID
	}
	if patch.ClearClient {
		updates["client_id"] = nil
	}
	if patch.ClientName != nil {
		updates["client_name"] = *patch.ClientName
	}
	if patch.ClientEmail != nil {
		updates["client_email"] = *patch.ClientEmail
	}
	if patch.ClientCompany != nil {
		updates["client_company"] = *patch.ClientCompany
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.ClearDueDate {
		updates["due_date"] = nil
	}
	return updates
}

func findCard(tx *gorm.DB, orgID, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := tx.Scopes(byOrg(orgID)).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("finding card: %w", classify(err))
	}
	return &card, nil
}

func lockStage(tx *gorm.DB, orgID, id uuid.UUID) (*model.Stage, error) {
	var stage model.Stage
	if err := forUpdate(tx).Scopes(byOrg(orgID)).First(&stage, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStageNotFound
		}
		return nil, fmt.Errorf("locking stage: %w", classify(err))
	}
	return &stage, nil
}

// lockStages locks a set of stages in a stable order.
func lockStages(tx *gorm.DB, orgID uuid.UUID, ids ...uuid.UUID) error {
	ids = slices.Clone(ids)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	ids = slices.Compact(ids)

	for _, id := range ids {
		if _, err := lockStage(tx, orgID, id); err != nil {
			return err
		}
	}
	return nil
}
