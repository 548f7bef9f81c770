// internal/model/calendar_event.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxReminderMinutes is the longest reminder lead time, four weeks.
const MaxReminderMinutes = 40320

// CalendarEvent is an appointment, optionally tied to a client or deal, with
// an optional email reminder sent ReminderMinutes before it starts.
type CalendarEvent struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_calendar_events_org_start,priority:1" json:"organizationId"`
	Title           string     `gorm:"type:text;not null" json:"title"`
	Description     string     `gorm:"type:text;not null;default:''" json:"description"`
	Location        string     `gorm:"type:text;not null;default:''" json:"location"`
	StartsAt        time.Time  `gorm:"not null;index:idx_calendar_events_org_start,priority:2" json:"start"`
	EndsAt          time.Time  `gorm:"not null" json:"end"`
	AllDay          bool       `gorm:"not null;default:false" json:"allDay"`
	Color           string     `gorm:"type:text;not null;default:''" json:"color"`
	ClientID        *uuid.UUID `gorm:"type:uuid" json:"clientId"`
	CardID          *uuid.UUID `gorm:"type:uuid" json:"cardId"`
	ReminderMinutes *int       `json:"reminderMinutes"`
	ReminderEmail   *string    `gorm:"type:text" json:"reminderEmail,omitempty"`
	ReminderSentAt  *time.Time `json:"reminderSentAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Client *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"-"`
	Card   *Card   `gorm:"foreignKey:CardID;constraint:OnDelete:SET NULL" json:"-"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// ReminderAt returns when the reminder is due, or false when none is set.
func (e *CalendarEvent) ReminderAt() (time.Time, bool) {
	if e.ReminderMinutes == nil {
		return time.Time{}, false
	}
	return e.StartsAt.Add(-time.Duration(*e.ReminderMinutes) * time.Minute), true
}
