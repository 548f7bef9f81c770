// internal/service/card.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/crmboard/internal/audit"
	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CardService struct {
	cards    repository.CardRepositoryIface
	stages   repository.StageRepositoryIface
	clients  repository.ClientRepositoryIface
	cache    *CacheService
	events   realtime.Publisher
	audit    audit.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func NewCardService(
	cards repository.CardRepositoryIface,
	stages repository.StageRepositoryIface,
	clients repository.ClientRepositoryIface,
	cacheService *CacheService,
	events realtime.Publisher,
	auditLogger audit.Logger,
	m *metrics.Metrics,
) *CardService {
	if events == nil {
		events = realtime.Nop{}
	}
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &CardService{
		cards:    cards,
		stages:   stages,
		clients:  clients,
		cache:    cacheService,
		events:   events,
		audit:    auditLogger,
		metrics:  m,
		validate: newValidator(),
	}
}

type CreateCardInput struct {
	PipelineID    uuid.UUID  `json:"pipelineId" validate:"required"`
	StageID       uuid.UUID  `json:"stageId" validate:"required"`
	Title         string     `json:"title" validate:"required,max=200"`
	Description   string     `json:"description"`
	Value         float64    `json:"value" validate:"gte=0"`
	Currency      string     `json:"currency" validate:"omitempty,len=3"`
	Priority      string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Position      *int       `json:"position"`
	ClientID      *uuid.UUID `json:"clientId"`
	ClientName    *string    `json:"clientName" validate:"omitempty,max=200"`
	ClientEmail   *string    `json:"clientEmail" validate:"omitempty,email"`
	ClientCompany *string    `json:"clientCompany" validate:"omitempty,max=200"`
	DueDate       *time.Time `json:"dueDate"`
}

type UpdateCardInput struct {
	ID            uuid.UUID  `json:"id" validate:"required"`
	Title         *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string    `json:"description"`
	Value         *float64   `json:"value" validate:"omitempty,gte=0"`
	Currency      *string    `json:"currency" validate:"omitempty,len=3"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	ClientID      *uuid.UUID `json:"clientId"`
	ClearClient   bool       `json:"clearClient"`
	ClientName    *string    `json:"clientName" validate:"omitempty,max=200"`
	ClientEmail   *string    `json:"clientEmail" validate:"omitempty,email"`
	ClientCompany *string    `json:"clientCompany" validate:"omitempty,max=200"`
	DueDate       *time.Time `json:"dueDate"`
	ClearDueDate  bool       `json:"clearDueDate"`
}

// MoveCardInput places a card at Position inside StageID. PipelineID is
// optional; when set the card must belong to it.
type MoveCardInput struct {
	CardID     uuid.UUID `json:"cardId" validate:"required"`
	StageID    uuid.UUID `json:"stageId" validate:"required"`
	Position   int       `json:"position"`
	PipelineID uuid.UUID `json:"-"`
}

// MoveCardResult is the moved card and, when the move closed the deal, the
// client it was linked to.
type MoveCardResult struct {
	Card          *model.Card   `json:"card"`
	Client        *model.Client `json:"client,omitempty"`
	ClientCreated bool          `json:"clientCreated"`
}

type CardFilter struct {
	PipelineID uuid.UUID
	StageID    uuid.UUID
	ClientID   uuid.UUID
}

func (s *CardService) ListCards(ctx context.Context, orgID uuid.UUID, filter CardFilter) ([]model.Card, error) {
	cards, err := s.cards.List(ctx, orgID, repository.CardFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	return cards, nil
}

func (s *CardService) GetCard(ctx context.Context, orgID, id uuid.UUID) (*model.Card, error) {
	card, err := s.cards.Get(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("finding card: %w", err)
	}
	return card, nil
}

// CreateCard adds a card to a stage, at the end unless Position is given.
func (s *CardService) CreateCard(ctx context.Context, orgID uuid.UUID, input CreateCardInput) (*model.Card, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	stage, err := s.stages.Get(ctx, orgID, input.StageID)
	if err != nil {
		return nil, fmt.Errorf("finding stage: %w", err)
	}
	if stage.PipelineID != input.PipelineID {
		return nil, domain.ErrStageMismatch
	}

	card := &model.Card{
		OrganizationID: orgID,
		PipelineID:     input.PipelineID,
		StageID:        input.StageID,
		ClientID:       input.ClientID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Value:          input.Value,
		Currency:       strings.ToUpper(input.Currency),
		Priority:       model.Priority(input.Priority),
		ClientName:     input.ClientName,
		ClientEmail:    input.ClientEmail,
		ClientCompany:  input.ClientCompany,
		DueDate:        utcPtr(input.DueDate),
	}
	if err := s.cards.Create(ctx, card, input.Position); err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}

	s.cache.InvalidateBoard(ctx, orgID, card.PipelineID)
	emit(ctx, s.events, realtime.CardCreate, orgID, card.PipelineID, card)
	record(ctx, s.audit, orgID, model.ActionCardCreate, model.EntityCard, card.ID, map[string]interface{}{
		"stageId":  card.StageID,
		"position": card.Position,
	})
	return card, nil
}

// UpdateCard edits card fields. It never changes the stage or position and
// never creates clients.
func (s *CardService) UpdateCard(ctx context.Context, orgID uuid.UUID, input UpdateCardInput) (*model.Card, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	patch := repository.CardPatch{
		Title:         input.Title,
		Description:   input.Description,
		Value:         input.Value,
		ClientID:      input.ClientID,
		ClearClient:   input.ClearClient,
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		ClientCompany: input.ClientCompany,
		DueDate:       utcPtr(input.DueDate),
		ClearDueDate:  input.ClearDueDate,
	}
	if input.Currency != nil {
		currency := strings.ToUpper(*input.Currency)
		patch.Currency = &currency
	}
	if input.Priority != nil {
		priority := model.Priority(*input.Priority)
		patch.Priority = &priority
	}

	card, err := s.cards.Update(ctx, orgID, input.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("updating card: %w", err)
	}

	s.cache.InvalidateBoard(ctx, orgID, card.PipelineID)
	emit(ctx, s.events, realtime.CardUpdate, orgID, card.PipelineID, card)
	record(ctx, s.audit, orgID, model.ActionCardUpdate, model.EntityCard, card.ID, nil)
	return card, nil
}

// MoveCard reorders a card inside its stage or transfers it to another stage
// of the same pipeline. Moving a card without a client into a closed stage
// links or creates the client from the card's inline contact fields; that
// step is best-effort and never fails the move.
func (s *CardService) MoveCard(ctx context.Context, orgID uuid.UUID, input MoveCardInput) (*MoveCardResult, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	var (
		card  *model.Card
		stage *model.Stage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		card, err = s.cards.Get(gctx, orgID, input.CardID)
		return err
	})
	g.Go(func() error {
		var err error
		stage, err = s.stages.Get(gctx, orgID, input.StageID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.CardMoved(moveOutcome(err))
		return nil, fmt.Errorf("moving card: %w", err)
	}
	if stage.PipelineID != card.PipelineID || (input.PipelineID != uuid.Nil && card.PipelineID != input.PipelineID) {
		s.metrics.CardMoved(moveOutcome(domain.ErrStageMismatch))
		return nil, domain.ErrStageMismatch
	}

	moved, err := s.cards.Move(ctx, orgID, repository.MoveParams{
		CardID:   input.CardID,
		StageID:  input.StageID,
		Position: input.Position,
	})
	if err != nil {
		s.metrics.CardMoved(moveOutcome(err))
		return nil, fmt.Errorf("moving card: %w", err)
	}
	s.metrics.CardMoved("ok")

	result := &MoveCardResult{Card: moved.Card}
	if moved.ToStage.IsClosed() && moved.Card.ClientID == nil && moved.Card.HasInlineClient() {
		client, created, err := s.clients.MaterializeFromCard(ctx, orgID, moved.Card.ID)
		switch {
		case err == nil:
			result.Card.ClientID = &client.ID
			result.Card.Client = client
			result.Client = client
			result.ClientCreated = created
			if created {
				record(ctx, s.audit, orgID, model.ActionClientCreate, model.EntityClient, client.ID, map[string]interface{}{
					"source": "card",
					"cardId": moved.Card.ID,
				})
			}
		case errors.Is(err, domain.ErrClientInfoMissing):
			slog.DebugContext(ctx, "card has no client email", "cardID", moved.Card.ID)
		default:
			slog.WarnContext(ctx, "failed to create client from closed card",
				"cardID", moved.Card.ID,
				"organizationID", orgID,
				"error", err)
		}
	}

	s.cache.InvalidateBoard(ctx, orgID, moved.Card.PipelineID)
	emit(ctx, s.events, realtime.CardMove, orgID, moved.Card.PipelineID, map[string]any{
		"cardId":       moved.Card.ID,
		"fromStageId":  moved.FromStageID,
		"toStageId":    moved.Card.StageID,
		"fromPosition": moved.FromPosition,
		"toPosition":   moved.Card.Position,
		"clientId":     moved.Card.ClientID,
	})
	record(ctx, s.audit, orgID, model.ActionCardMove, model.EntityCard, moved.Card.ID, map[string]interface{}{
		"fromStageId":  moved.FromStageID,
		"toStageId":    moved.Card.StageID,
		"fromPosition": moved.FromPosition,
		"toPosition":   moved.Card.Position,
	})
	return result, nil
}

func (s *CardService) DeleteCard(ctx context.Context, orgID, id uuid.UUID) (*model.Card, error) {
	card, err := s.cards.Delete(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("deleting card: %w", err)
	}

	s.cache.InvalidateBoard(ctx, orgID, card.PipelineID)
	emit(ctx, s.events, realtime.CardDelete, orgID, card.PipelineID, map[string]any{
		"id":      card.ID,
		"stageId": card.StageID,
	})
	record(ctx, s.audit, orgID, model.ActionCardDelete, model.EntityCard, card.ID, map[string]interface{}{
		"stageId": card.StageID,
	})
	return card, nil
}

func moveOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
