// internal/model/client.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer record, unique by email inside an organization.
type Client struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_clients_org_email,priority:1" json:"organizationId"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Email          string    `gorm:"type:text;not null;uniqueIndex:uq_clients_org_email,priority:2" json:"email"`
	Phone          string    `gorm:"type:text;not null;default:''" json:"phone"`
	Company        string    `gorm:"type:text;not null;default:''" json:"company"`
	ValueUSD       float64   `gorm:"column:value_usd;not null;default:0" json:"valueUsd"`
	Notes          string    `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
