// internal/model/pipeline.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PipelineStatus string

const (
	PipelineActive   PipelineStatus = "active"
	PipelineArchived PipelineStatus = "archived"
)

// Pipeline is a sales board owning an ordered set of stages.
type Pipeline struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organizationId"`
	Name           string         `gorm:"type:text;not null" json:"name"`
	Status         PipelineStatus `gorm:"type:text;not null;default:active" json:"status"`
	IsDefault      bool           `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	Stages []Stage `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

func (Pipeline) TableName() string {
	return "pipelines"
}

func (p *Pipeline) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Status == "" {
		p.Status = PipelineActive
	}
	return nil
}
