// internal/model/card.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Card is a deal. Position orders cards top to bottom inside a stage.
//
// Until a deal closes it may carry the prospect inline (ClientName,
// ClientEmail, ClientCompany) instead of a ClientID.
type Card struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organizationId"`
	PipelineID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"pipelineId"`
	StageID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_cards_stage_position,priority:1" json:"stageId"`
	ClientID       *uuid.UUID `gorm:"type:uuid;index" json:"clientId"`
	Title          string     `gorm:"type:text;not null" json:"title"`
	Description    string     `gorm:"type:text;not null;default:''" json:"description"`
	Value          float64    `gorm:"not null;default:0" json:"value"`
	Currency       string     `gorm:"type:text;not null;default:USD" json:"currency"`
	Priority       Priority   `gorm:"type:text;not null;default:medium" json:"priority"`
	Position       int        `gorm:"not null;default:0;index:idx_cards_stage_position,priority:2" json:"position"`
	ClientName     *string    `gorm:"type:text" json:"clientName,omitempty"`
	ClientEmail    *string    `gorm:"type:text" json:"clientEmail,omitempty"`
	ClientCompany  *string    `gorm:"type:text" json:"clientCompany,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Pipeline *Pipeline `gorm:"foreignKey:PipelineID;constraint:OnDelete:CASCADE" json:"-"`
	Client   *Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"client,omitempty"`
}

func (Card) TableName() string {
	return "cards"
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	return nil
}

// HasInlineClient reports whether the card carries enough prospect data to
// create a client from. Clients are keyed by email, so a name alone is not
// enough.
func (c *Card) HasInlineClient() bool {
	return c.ClientEmail != nil && strings.TrimSpace(*c.ClientEmail) != ""
}

// InlineClientName is the name to give a client created from this card,
// falling back to the email when no name was captured.
func (c *Card) InlineClientName() string {
	if c.ClientName != nil && strings.TrimSpace(*c.ClientName) != "" {
		return strings.TrimSpace(*c.ClientName)
	}
	if c.ClientEmail != nil {
		return strings.TrimSpace(*c.ClientEmail)
	}
	return ""
}
