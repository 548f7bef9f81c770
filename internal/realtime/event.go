// Package realtime fans board changes out to the connected sessions of an
// organization.
package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	PipelineCreate = "pipeline:create"
	PipelineUpdate = "pipeline:update"
	PipelineDelete = "pipeline:delete"

	StageCreate  = "stage:create"
	StageUpdate  = "stage:update"
	StageReorder = "stage:reorder"
	StageDelete  = "stage:delete"

	CardCreate = "card:create"
	CardUpdate = "card:update"
	CardDelete = "card:delete"
	CardMove   = "card:move"

	BatchApply = "batch:apply"

	CalendarReminder = "calendar:reminder"
)

// Event is one change notification. Payload is encoded as JSON.
type Event struct {
	Type           string    `json:"type"`
	OrganizationID uuid.UUID `json:"organizationId"`
	PipelineID     uuid.UUID `json:"pipelineId,omitempty"`
	Payload        any       `json:"payload,omitempty"`
	At             time.Time `json:"at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, orgID, pipelineID uuid.UUID, payload any) *Event {
	return &Event{
		Type:           eventType,
		OrganizationID: orgID,
		PipelineID:     pipelineID,
		Payload:        payload,
		At:             time.Now().UTC(),
	}
}

// Publisher delivers events. Implementations must not block on slow readers.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, *Event) error { return nil }
