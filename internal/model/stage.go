// internal/model/stage.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StageKind marks whether a stage is terminal for the deals it holds.
type StageKind string

const (
	StageOpen   StageKind = "open"
	StageClosed StageKind = "closed"
)

// ClosedStageName is the legacy display name that implied a closed stage.
const ClosedStageName = "Closed"

// Stage is a column of a pipeline. Position orders stages left to right.
type Stage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organizationId"`
	PipelineID     uuid.UUID `gorm:"type:uuid;not null;index:idx_stages_pipeline_position,priority:1" json:"pipelineId"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Color          string    `gorm:"type:text;not null;default:''" json:"color"`
	Kind           StageKind `gorm:"type:text;not null;default:open" json:"kind"`
	Position       int       `gorm:"not null;default:0;index:idx_stages_pipeline_position,priority:2" json:"position"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Cards []Card `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

func (Stage) TableName() string {
	return "stages"
}

func (s *Stage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	if s.Kind == "" {
		s.Kind = DefaultStageKind(s.Name)
	}
	return nil
}

// IsClosed reports whether cards entering the stage are closed deals.
func (s *Stage) IsClosed() bool {
	return s.Kind == StageClosed
}

// DefaultStageKind keeps boards created before stage kinds existed working:
// a stage named "Closed" is terminal.
func DefaultStageKind(name string) StageKind {
	if strings.EqualFold(strings.TrimSpace(name), ClosedStageName) {
		return StageClosed
	}
	return StageOpen
}
