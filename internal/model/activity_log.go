package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog records a change made to a tenant's pipeline data
type ActivityLog struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"type:uuid;not null;index:idx_activity_logs_org_created,priority:1"`
	ActorID        string    `json:"actorId"`
	Action         string    `json:"action" gorm:"not null"`
	EntityType     string    `json:"entityType" gorm:"not null"`
	EntityID       string    `json:"entityId" gorm:"not null"`
	Context        JSONMap   `json:"context" gorm:"type:jsonb"`
	RequestID      string    `json:"requestId"`
	ClientIP       string    `json:"clientIp"`
	UserAgent      string    `json:"userAgent"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index:idx_activity_logs_org_created,priority:2"`
}

// TableName specifies the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

// Constants for ActivityLog actions
const (
	ActionPipelineCreate = "pipeline.create"
	ActionPipelineUpdate = "pipeline.update"
	ActionPipelineDelete = "pipeline.delete"
	ActionStageCreate    = "stage.create"
	ActionStageUpdate    = "stage.update"
	ActionStageReorder   = "stage.reorder"
	ActionStageDelete    = "stage.delete"
	ActionCardCreate     = "card.create"
	ActionCardUpdate     = "card.update"
	ActionCardMove       = "card.move"
	ActionCardDelete     = "card.delete"
	ActionClientCreate   = "client.create"
	ActionClientUpdate   = "client.update"
	ActionClientDelete   = "client.delete"
	ActionBatchApply     = "batch.apply"
)

// Entity types recorded in ActivityLog
const (
	EntityPipeline = "pipeline"
	EntityStage    = "stage"
	EntityCard     = "card"
	EntityClient   = "client"
)
