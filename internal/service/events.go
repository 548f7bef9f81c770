package service

import (
	"context"
	"log/slog"

	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/google/uuid"
)

// emit publishes a board event. Delivery is best-effort.
func emit(ctx context.Context, pub realtime.Publisher, eventType string, orgID, pipelineID uuid.UUID, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, realtime.NewEvent(eventType, orgID, pipelineID, payload)); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "type", eventType, "organizationID", orgID, "error", err)
	}
}
