// internal/service/pipeline.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/crmboard/internal/audit"
	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PipelineService struct {
	pipelines repository.PipelineRepositoryIface
	stages    repository.StageRepositoryIface
	batch     repository.BatchRepositoryIface
	cache     *CacheService
	events    realtime.Publisher
	audit     audit.Logger
	validate  *validator.Validate
}

func NewPipelineService(
	pipelines repository.PipelineRepositoryIface,
	stages repository.StageRepositoryIface,
	batch repository.BatchRepositoryIface,
	cacheService *CacheService,
	events realtime.Publisher,
	auditLogger audit.Logger,
) *PipelineService {
	if events == nil {
		events = realtime.Nop{}
	}
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &PipelineService{
		pipelines: pipelines,
		stages:    stages,
		batch:     batch,
		cache:     cacheService,
		events:    events,
		audit:     auditLogger,
		validate:  newValidator(),
	}
}

type StageInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,max=32"`
	Kind  string `json:"kind" validate:"omitempty,oneof=open closed"`
}

type CreatePipelineInput struct {
	Name      string       `json:"name" validate:"required,max=200"`
	Status    string       `json:"status" validate:"omitempty,oneof=active archived"`
	IsDefault bool         `json:"isDefault"`
	Stages    []StageInput `json:"stages" validate:"omitempty,dive"`
}

type UpdatePipelineInput struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	Name      *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Status    *string   `json:"status" validate:"omitempty,oneof=active archived"`
	IsDefault *bool     `json:"isDefault"`
}

type CreateStageInput struct {
	PipelineID uuid.UUID `json:"pipelineId" validate:"required"`
	StageInput
}

type CreateStagesInput struct {
	PipelineID uuid.UUID    `json:"pipelineId" validate:"required"`
	Stages     []StageInput `json:"stages" validate:"required,min=1,dive"`
}

type UpdateStageInput struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Name  *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Color *string   `json:"color" validate:"omitempty,max=32"`
	Kind  *string   `json:"kind" validate:"omitempty,oneof=open closed"`
}

type ReorderStageInput struct {
	StageID  uuid.UUID `json:"stageId" validate:"required"`
	Position int       `json:"newPosition"`
}

// DeleteStageResult reports a stage removal. CardsRemoved is only known
// when the cards were deleted explicitly.
type DeleteStageResult struct {
	Stage        *model.Stage `json:"stage"`
	CardsRemoved *int64       `json:"cardsRemoved,omitempty"`
}

// BatchItemInput is one entry of a mixed batch. Data carries the fields of an
// update and is ignored for deletes.
type BatchItemInput struct {
	Type   string         `json:"type" validate:"required,oneof=stage card"`
	Action string         `json:"action" validate:"required,oneof=delete update"`
	ID     uuid.UUID      `json:"id" validate:"required"`
	Data   BatchItemPatch `json:"data"`
}

type BatchItemPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Color       *string  `json:"color" validate:"omitempty,max=32"`
	Kind        *string  `json:"kind" validate:"omitempty,oneof=open closed"`
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value" validate:"omitempty,gte=0"`
	Priority    *string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type BatchInput struct {
	Items []BatchItemInput `json:"items" validate:"required,min=1,dive"`
}

// ListPipelines returns the organization's pipelines with their stages.
func (s *PipelineService) ListPipelines(ctx context.Context, orgID uuid.UUID) ([]model.Pipeline, error) {
	var pipelines []model.Pipeline
	err := s.cache.GetOrSet(ctx, pipelinesKey(orgID), &pipelines, func() (interface{}, error) {
		return s.pipelines.List(ctx, orgID)
	})
	if err != nil {
		return nil, fmt.Errorf("listing pipelines: %w", err)
	}
	return pipelines, nil
}

// GetBoard returns a pipeline with its stages and their cards, in order.
func (s *PipelineService) GetBoard(ctx context.Context, orgID, pipelineID uuid.UUID) (*model.Pipeline, error) {
	var board model.Pipeline
	err := s.cache.GetOrSet(ctx, boardKey(orgID, pipelineID), &board, func() (interface{}, error) {
		return s.pipelines.Get(ctx, orgID, pipelineID, true)
	})
	if err != nil {
		return nil, fmt.Errorf("loading board: %w", err)
	}
	return &board, nil
}

func (s *PipelineService) CreatePipeline(ctx context.Context, orgID uuid.UUID, input CreatePipelineInput) (*model.Pipeline, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	pipeline := &model.Pipeline{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(input.Name),
		Status:         model.PipelineStatus(input.Status),
		IsDefault:      input.IsDefault,
	}
	for _, st := range input.Stages {
		pipeline.Stages = append(pipeline.Stages, stageFromInput(st))
	}

	if err := s.pipelines.Create(ctx, pipeline); err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	s.cache.InvalidateOrganization(ctx, orgID)
	emit(ctx, s.events, realtime.PipelineCreate, orgID, pipeline.ID, pipeline)
	record(ctx, s.audit, orgID, model.ActionPipelineCreate, model.EntityPipeline, pipeline.ID, map[string]interface{}{
		"name":   pipeline.Name,
		"stages": len(pipeline.Stages),
	})
	return pipeline, nil
}

func (s *PipelineService) UpdatePipeline(ctx context.Context, orgID uuid.UUID, input UpdatePipelineInput) (*model.Pipeline, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	patch := repository.PipelinePatch{IsDefault: input.IsDefault}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		patch.Name = &name
	}
	if input.Status != nil {
		status := model.PipelineStatus(*input.Status)
		patch.Status = &status
	}

	pipeline, err := s.pipelines.Update(ctx, orgID, input.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("updating pipeline: %w", err)
	}

	// default flag changes touch sibling pipelines
	s.cache.InvalidateOrganization(ctx, orgID)
	emit(ctx, s.events, realtime.PipelineUpdate, orgID, pipeline.ID, pipeline)
	record(ctx, s.audit, orgID, model.ActionPipelineUpdate, model.EntityPipeline, pipeline.ID, nil)
	return pipeline, nil
}

func (s *PipelineService) DeletePipeline(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.pipelines.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("deleting pipeline: %w", err)
	}

	s.cache.InvalidateBoard(ctx, orgID, id)
	emit(ctx, s.events, realtime.PipelineDelete, orgID, id, map[string]any{"id": id})
	record(ctx, s.audit, orgID, model.ActionPipelineDelete, model.EntityPipeline, id, nil)
	return nil
}

func (s *PipelineService) ListStages(ctx context.Context, orgID, pipelineID uuid.UUID) ([]model.Stage, error) {
	if pipelineID == uuid.Nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "pipelineId", Rule: "required"}}}
	}
	stages, err := s.stages.List(ctx, orgID, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	return stages, nil
}

// CreateStage appends one stage to the end of a pipeline.
func (s *PipelineService) CreateStage(ctx context.Context, orgID uuid.UUID, input CreateStageInput) (*model.Stage, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	stage := stageFromInput(input.StageInput)
	stage.OrganizationID = orgID
	stage.PipelineID = input.PipelineID
	if err := s.stages.Create(ctx, &stage); err != nil {
		return nil, fmt.Errorf("creating stage: %w", err)
	}

	s.stageChanged(ctx, orgID, stage.PipelineID, realtime.StageCreate, &stage)
	record(ctx, s.audit, orgID, model.ActionStageCreate, model.EntityStage, stage.ID, map[string]interface{}{
		"pipelineId": stage.PipelineID,
		"position":   stage.Position,
	})
	return &stage, nil
}

// CreateStages appends several stages in request order, all or none.
func (s *PipelineService) CreateStages(ctx context.Context, orgID uuid.UUID, input CreateStagesInput) ([]*model.Stage, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	stages := make([]*model.Stage, 0, len(input.Stages))
	for _, in := range input.Stages {
		st := stageFromInput(in)
		stages = append(stages, &st)
	}
	if err := s.stages.CreateBatch(ctx, orgID, input.PipelineID, stages); err != nil {
		return nil, fmt.Errorf("creating stages: %w", err)
	}

	s.stageChanged(ctx, orgID, input.PipelineID, realtime.StageCreate, stages)
	for _, st := range stages {
		record(ctx, s.audit, orgID, model.ActionStageCreate, model.EntityStage, st.ID, map[string]interface{}{
			"pipelineId": st.PipelineID,
			"position":   st.Position,
			"batch":      true,
		})
	}
	return stages, nil
}

func (s *PipelineService) UpdateStage(ctx context.Context, orgID uuid.UUID, input UpdateStageInput) (*model.Stage, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	patch := repository.StagePatch{Name: input.Name, Color: input.Color}
	if input.Kind != nil {
		kind := model.StageKind(*input.Kind)
		patch.Kind = &kind
	}

	stage, err := s.stages.Update(ctx, orgID, input.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("updating stage: %w", err)
	}

	s.stageChanged(ctx, orgID, stage.PipelineID, realtime.StageUpdate, stage)
	record(ctx, s.audit, orgID, model.ActionStageUpdate, model.EntityStage, stage.ID, nil)
	return stage, nil
}

// ReorderStage moves a stage to a new index and returns the pipeline's
// stages in their new order.
func (s *PipelineService) ReorderStage(ctx context.Context, orgID uuid.UUID, input ReorderStageInput) ([]model.Stage, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	stages, err := s.stages.Reorder(ctx, orgID, input.StageID, input.Position)
	if err != nil {
		return nil, fmt.Errorf("reordering stage: %w", err)
	}

	var pipelineID uuid.UUID
	if len(stages) > 0 {
		pipelineID = stages[0].PipelineID
	}
	s.stageChanged(ctx, orgID, pipelineID, realtime.StageReorder, stages)
	record(ctx, s.audit, orgID, model.ActionStageReorder, model.EntityStage, input.StageID, map[string]interface{}{
		"position": input.Position,
	})
	return stages, nil
}

// DeleteStage removes a stage and its cards. withCards deletes the cards
// explicitly so their number can be reported.
func (s *PipelineService) DeleteStage(ctx context.Context, orgID, id uuid.UUID, withCards bool) (*DeleteStageResult, error) {
	result := &DeleteStageResult{}
	if withCards {
		stage, removed, err := s.stages.DeleteWithCards(ctx, orgID, id)
		if err != nil {
			return nil, fmt.Errorf("deleting stage: %w", err)
		}
		result.Stage = stage
		result.CardsRemoved = &removed
	} else {
		stage, err := s.stages.Delete(ctx, orgID, id)
		if err != nil {
			return nil, fmt.Errorf("deleting stage: %w", err)
		}
		result.Stage = stage
	}

	s.stageChanged(ctx, orgID, result.Stage.PipelineID, realtime.StageDelete, result)
	details := map[string]interface{}{"pipelineId": result.Stage.PipelineID}
	if result.CardsRemoved != nil {
		details["cardsRemoved"] = *result.CardsRemoved
	}
	record(ctx, s.audit, orgID, model.ActionStageDelete, model.EntityStage, id, details)
	return result, nil
}

// ApplyBatch deletes and updates a mixed list of stages and cards in one
// transaction.
func (s *PipelineService) ApplyBatch(ctx context.Context, orgID uuid.UUID, input BatchInput) (*repository.BatchResult, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	items := make([]repository.BatchItem, 0, len(input.Items))
	for _, in := range input.Items {
		item := repository.BatchItem{Kind: in.Type, Action: in.Action, ID: in.ID}
		if in.Action == repository.BatchActionUpdate {
			item.Stage = repository.StagePatch{Name: in.Data.Name, Color: in.Data.Color}
			if in.Data.Kind != nil {
				kind := model.StageKind(*in.Data.Kind)
				item.Stage.Kind = &kind
			}
			item.Card = repository.CardPatch{Title: in.Data.Title, Description: in.Data.Description, Value: in.Data.Value}
			if in.Data.Priority != nil {
				priority := model.Priority(*in.Data.Priority)
				item.Card.Priority = &priority
			}
		}
		items = append(items, item)
	}

	result, err := s.batch.ApplyBatch(ctx, orgID, items)
	if err != nil {
		return nil, fmt.Errorf("applying batch: %w", err)
	}

	for _, pipelineID := range result.PipelineIDs {
		s.cache.InvalidateBoard(ctx, orgID, pipelineID)
		emit(ctx, s.events, realtime.BatchApply, orgID, pipelineID, result)
	}
	slog.InfoContext(ctx, "batch applied",
		"organizationID", orgID,
		"items", len(items),
		"cascadedCards", result.CascadedCards)
	record(ctx, s.audit, orgID, model.ActionBatchApply, model.EntityPipeline, uuid.Nil, map[string]interface{}{
		"stagesDeleted": result.StagesDeleted,
		"stagesUpdated": result.StagesUpdated,
		"cardsDeleted":  result.CardsDeleted,
		"cardsUpdated":  result.CardsUpdated,
		"cascadedCards": result.CascadedCards,
	})
	return result, nil
}

func (s *PipelineService) stageChanged(ctx context.Context, orgID, pipelineID uuid.UUID, eventType string, payload any) {
	s.cache.InvalidateBoard(ctx, orgID, pipelineID)
	emit(ctx, s.events, eventType, orgID, pipelineID, payload)
}

func stageFromInput(in StageInput) model.Stage {
	return model.Stage{
		Name:  strings.TrimSpace(in.Name),
		Color: in.Color,
		Kind:  model.StageKind(in.Kind),
	}
}
